package repae

import (
	"time"
)

// The recruiting portal keeps the vocabulary of the original platform
// (French status values on the wire).

type OfferStatus string

const (
	OfferDraft     OfferStatus = "brouillon"
	OfferPublished OfferStatus = "publiee"
	OfferExpired   OfferStatus = "expiree"
	OfferClosed    OfferStatus = "cloturee"
	OfferFilled    OfferStatus = "pourvue"
)

type ContractType string

const (
	ContractCDI        ContractType = "CDI"
	ContractCDD        ContractType = "CDD"
	ContractInternship ContractType = "Stage"
	ContractFreelance  ContractType = "Freelance"
	ContractConsultant ContractType = "Consultant"
)

type RemoteMode string

const (
	RemoteOnsite RemoteMode = "presentiel"
	RemoteHybrid RemoteMode = "hybride"
	RemoteFull   RemoteMode = "full_remote"
)

type ExperienceLevel string

const (
	LevelJunior       ExperienceLevel = "junior"
	LevelIntermediate ExperienceLevel = "intermediaire"
	LevelSenior       ExperienceLevel = "senior"
	LevelExpert       ExperienceLevel = "expert"
)

// Offer is a job or internship listing published by a company.
// SalaryMin <= SalaryMax whenever both are set. ViewCount and
// ApplicationCount are never decremented by this layer.
type Offer struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"companyId"`
	Title            string          `json:"title"`
	CompanyName      string          `json:"companyName"`
	Location         string          `json:"location"`
	ContractType     ContractType    `json:"contractType"`
	RemoteMode       RemoteMode      `json:"remoteMode"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel"`
	Status           OfferStatus     `json:"status"`
	Description      string          `json:"description"`
	Skills           []string        `json:"skills,omitempty"`
	SalaryMin        int             `json:"salaryMin,omitempty"`
	SalaryMax        int             `json:"salaryMax,omitempty"`
	Currency         string          `json:"currency,omitempty"`
	PublishedAt      *time.Time      `json:"publishedAt,omitempty"`
	ExpiresAt        *time.Time      `json:"expiresAt,omitempty"`
	ViewCount        int             `json:"viewCount"`
	ApplicationCount int             `json:"applicationCount"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

type CandidatureStatus string

const (
	CandidatureNew       CandidatureStatus = "nouvelle"
	CandidatureViewed    CandidatureStatus = "vue"
	CandidatureInReview  CandidatureStatus = "en_cours"
	CandidatureAccepted  CandidatureStatus = "acceptee"
	CandidatureRejected  CandidatureStatus = "refusee"
	// CandidatureWithdrawn is reachable by the applicant from any
	// pre-terminal state.
	CandidatureWithdrawn CandidatureStatus = "retiree"
)

// Candidature references its offer and its applicant by id only.
type Candidature struct {
	ID        string            `json:"id"`
	OfferID   string            `json:"offerId"`
	AlumniID  string            `json:"alumniId"`
	Statut    CandidatureStatus `json:"statut"`
	Message   string            `json:"message,omitempty"`
	CVURL     string            `json:"cvUrl,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type TransactionType string

const (
	TransactionGain  TransactionType = "gain"
	TransactionSpend TransactionType = "depense"
)

type PointsTransaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Points      int             `json:"points"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

// CompanyLoyalty is the points accumulator for one company. The tier is
// never stored on the record; it is derived from Points at read time.
type CompanyLoyalty struct {
	CompanyID   string              `json:"companyId"`
	Points      int                 `json:"points"`
	TotalEarned int                 `json:"totalEarned"`
	TotalSpent  int                 `json:"totalSpent"`
	History     []PointsTransaction `json:"history,omitempty"`
}
