package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/internal/adapter"
)

// ProfileDetail is everything the profile page renders.
type ProfileDetail struct {
	Profile     repae.Profile          `json:"profile"`
	Experiences []repae.ExperienceView `json:"experiences"`
	Formations  []repae.FormationView  `json:"formations"`
	Competences []repae.CompetenceView `json:"competences"`
	Portfolio   []repae.PortfolioView  `json:"portfolio"`
}

type ProfileUsecase struct {
	source AlumniSource
}

func NewProfileUsecase(source AlumniSource) *ProfileUsecase {
	return &ProfileUsecase{source: source}
}

// Get assembles the full profile view. The member record is required; the
// sub-collections degrade to empty lists when their fetch fails, so a
// partially unavailable identity service still renders a profile.
func (uc *ProfileUsecase) Get(ctx context.Context, id string) (ProfileDetail, error) {
	alumni, err := uc.source.GetAlumni(ctx, id)
	if err != nil {
		return ProfileDetail{}, errors.Wrap(err, "profile: get alumni")
	}

	detail := ProfileDetail{
		Profile:     adapter.AlumniToProfile(alumni),
		Experiences: []repae.ExperienceView{},
		Formations:  []repae.FormationView{},
		Competences: []repae.CompetenceView{},
		Portfolio:   []repae.PortfolioView{},
	}

	for _, s := range alumni.Skills {
		detail.Competences = append(detail.Competences, adapter.SkillToView(s))
	}

	if experiences, err := uc.source.ListExperiences(ctx, id); err == nil {
		for _, exp := range experiences {
			detail.Experiences = append(detail.Experiences, adapter.ExperienceToView(exp))
		}
	}
	if educations, err := uc.source.ListEducations(ctx, id); err == nil {
		for _, edu := range educations {
			detail.Formations = append(detail.Formations, adapter.EducationToView(edu))
		}
	}
	if projects, err := uc.source.ListProjects(ctx, id); err == nil {
		for _, proj := range projects {
			detail.Portfolio = append(detail.Portfolio, adapter.ProjectToView(proj))
		}
	}

	detail.Profile = adapter.EnrichCurrentPosition(detail.Profile, detail.Experiences)

	return detail, nil
}
