package repae

import (
	"time"
)

// Page is the paginated envelope every upstream collection endpoint returns.
// Total is the size of the filtered set, not of the page.
type Page[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
	SkillExpert       SkillLevel = "EXPERT"
)

type AlumniSkill struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Level SkillLevel `json:"level"`
}

// Alumni is the member record as served by the identity service.
// Every optional field may be absent from the payload.
type Alumni struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	FirstName         string        `json:"firstName"`
	LastName          string        `json:"lastName"`
	PhoneNumber       string        `json:"phoneNumber,omitempty"`
	City              string        `json:"city,omitempty"`
	Address           string        `json:"address,omitempty"`
	Bio               string        `json:"bio,omitempty"`
	Degree            string        `json:"degree,omitempty"`
	PhotoURL          string        `json:"photoUrl,omitempty"`
	CoverPicURL       string        `json:"coverPicUrl,omitempty"`
	PortfolioURL      string        `json:"portfolioUrl,omitempty"`
	GithubURL         string        `json:"githubUrl,omitempty"`
	LinkedinURL       string        `json:"linkedinUrl,omitempty"`
	XURL              string        `json:"xUrl,omitempty"`
	IsVerified        bool          `json:"isVerified"`
	IsOpenToMentoring bool          `json:"isOpenToMentoring"`
	Country           string        `json:"country,omitempty"`
	Department        string        `json:"department,omitempty"`
	Promotion         int           `json:"promotion,omitempty"`
	Email             string        `json:"email,omitempty"`
	Skills            []AlumniSkill `json:"skills,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// WorkExperience is owned by exactly one alumni. A nil EndDate means the
// position is ongoing. Some upstream shapes also carry an isCurrent boolean;
// it is decoded but never consulted. EndDate is the authoritative signal.
type WorkExperience struct {
	ID           string     `json:"id"`
	AlumniID     string     `json:"alumniId"`
	Position     string     `json:"position"`
	CompanyName  string     `json:"companyName"`
	Location     string     `json:"location,omitempty"`
	ContractType string     `json:"contractType"`
	Description  string     `json:"description,omitempty"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	IsCurrent    bool       `json:"isCurrent,omitempty"`
}

type Education struct {
	ID            string     `json:"id"`
	AlumniID      string     `json:"alumniId"`
	Degree        string     `json:"degree"`
	FieldOfStudy  string     `json:"fieldOfStudy,omitempty"`
	SchoolName    string     `json:"schoolName"`
	SchoolAddress string     `json:"schoolAddress,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	Description   string     `json:"description,omitempty"`
	StartDate     time.Time  `json:"startDate"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

type Project struct {
	ID          string        `json:"id"`
	AlumniID    string        `json:"alumniId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	ProjectURL  string        `json:"projectUrl,omitempty"`
	Client      string        `json:"client,omitempty"`
	Skills      []AlumniSkill `json:"skills,omitempty"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
}

type Promotion struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	Nickname  string    `json:"nickname,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Department struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Acronym     string    `json:"acronym,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Country struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsoCode   string    `json:"isoCode"`
	PhoneCode string    `json:"phoneCode,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContentStatus string

const (
	ContentDraft     ContentStatus = "DRAFT"
	ContentPublished ContentStatus = "PUBLISHED"
	ContentArchived  ContentStatus = "ARCHIVED"
)

type NewsAuthor struct {
	ID        string `json:"id"`
	FullName  string `json:"fullName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type News struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Content     string        `json:"content"`
	Summary     string        `json:"summary,omitempty"`
	CoverImage  string        `json:"coverImage,omitempty"`
	Status      ContentStatus `json:"status"`
	IsFeatured  bool          `json:"isFeatured"`
	PublishedAt *time.Time    `json:"publishedAt,omitempty"`
	Author      NewsAuthor    `json:"author"`
	CategoryID  string        `json:"categoryId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type LocationType string

const (
	LocationPhysical LocationType = "PHYSICAL"
	LocationOnline   LocationType = "ONLINE"
)

type EventLocation struct {
	Type         LocationType `json:"type"`
	LocationName string       `json:"locationName,omitempty"`
	AccessURL    string       `json:"accessUrl,omitempty"`
}

type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	EventDate   time.Time     `json:"eventDate"`
	Status      ContentStatus `json:"status"`
	IsFeatured  bool          `json:"isFeatured"`
	Location    EventLocation `json:"location"`
	ImageURL    string        `json:"imageUrl,omitempty"`
	CategoryID  string        `json:"categoryId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Category struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	HexColor   string    `json:"hexColor"`
	BgHexColor string    `json:"bgHexColor"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Notification is a member notification served by the identity service.
type Notification struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Event payload pushed on the realtime stream.
type Signal struct {
	Channel string `json:"channel"`
	Kind    string `json:"kind"`
	Payload any    `json:"payload,omitempty"`
}
