// Package adapter maps identity-service records onto the profile view
// models. All functions are pure: no I/O, no shared state, inputs are
// never mutated.
package adapter

import (
	"fmt"
	"time"

	"github.com/repae-esatic/gateway"
)

// MapOrDefault resolves a controlled-vocabulary value through a lookup
// table. A source value absent from the table yields def, never a zero
// value and never a panic.
func MapOrDefault[K comparable, V any](table map[K]V, key K, def V) V {
	if v, ok := table[key]; ok {
		return v
	}
	return def
}

// contractTypes maps upstream contract types onto the portal vocabulary.
// Unknown values fall back to CDI, the most common contract type.
var contractTypes = map[string]repae.ContractType{
	"CDI":         repae.ContractCDI,
	"CDD":         repae.ContractCDD,
	"INTERNSHIP":  repae.ContractInternship,
	"FREELANCE":   repae.ContractFreelance,
	"PART_TIME":   repae.ContractCDD,
	"ALTERNATION": repae.ContractCDD,
	"VOLUNTEER":   repae.ContractConsultant,
}

// skillLevels maps upstream proficiency levels. Unknown values fall back
// to intermediaire.
var skillLevels = map[repae.SkillLevel]repae.CompetenceLevel{
	repae.SkillBeginner:     repae.CompetenceDebutant,
	repae.SkillIntermediate: repae.CompetenceIntermediaire,
	repae.SkillAdvanced:     repae.CompetenceAvance,
	repae.SkillExpert:       repae.CompetenceExpert,
}

// availabilities validates upstream availability strings. Unknown values
// fall back to en_poste.
var availabilities = map[string]repae.Availability{
	"disponible":          repae.Available,
	"en_poste":            repae.Employed,
	"ouvert_opportunites": repae.OpenToOpportunities,
}

func ContractType(source string) repae.ContractType {
	return MapOrDefault(contractTypes, source, repae.ContractCDI)
}

func SkillLevelView(source repae.SkillLevel) repae.CompetenceLevel {
	return MapOrDefault(skillLevels, source, repae.CompetenceIntermediaire)
}

func Availability(source string) repae.Availability {
	return MapOrDefault(availabilities, source, repae.Employed)
}

// YearMonth reduces a timestamp to "YYYY-MM" display granularity. Only the
// calendar components of the stamp are used, so the result is stable
// across timezones.
func YearMonth(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

func yearMonthPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return YearMonth(*t)
}

// AlumniToProfile builds the profile view model for a member record.
// Missing optional fields become empty strings, never propagated nils.
// The current-position fields stay empty until EnrichCurrentPosition runs.
func AlumniToProfile(a repae.Alumni) repae.Profile {
	availability := repae.Employed
	if a.IsOpenToMentoring {
		availability = repae.OpenToOpportunities
	}

	skills := make([]string, 0, len(a.Skills))
	for _, s := range a.Skills {
		skills = append(skills, s.Name)
	}

	return repae.Profile{
		ID:                a.ID,
		Prenom:            a.FirstName,
		Nom:               a.LastName,
		Email:             a.Email,
		Telephone:         a.PhoneNumber,
		PhotoURL:          a.PhotoURL,
		CoverURL:          a.CoverPicURL,
		Promotion:         a.Promotion,
		Pays:              a.Country,
		Ville:             a.City,
		Adresse:           a.Address,
		Disponibilite:     availability,
		Biographie:        a.Bio,
		SiteWeb:           a.PortfolioURL,
		LinkedinURL:       a.LinkedinURL,
		TwitterURL:        a.XURL,
		GithubURL:         a.GithubURL,
		Competences:       skills,
		DateInscription:   a.CreatedAt.Format(time.RFC3339),
		DerniereConnexion: a.UpdatedAt.Format(time.RFC3339),
	}
}

// ExperienceToView maps one work experience. EnCours is derived solely
// from the absence of an end date; the upstream IsCurrent flag is ignored.
func ExperienceToView(exp repae.WorkExperience) repae.ExperienceView {
	return repae.ExperienceView{
		ID:          exp.ID,
		Poste:       exp.Position,
		Entreprise:  exp.CompanyName,
		Lieu:        exp.Location,
		TypeContrat: ContractType(exp.ContractType),
		DateDebut:   YearMonth(exp.StartDate),
		DateFin:     yearMonthPtr(exp.EndDate),
		EnCours:     exp.EndDate == nil,
		Description: exp.Description,
	}
}

func EducationToView(edu repae.Education) repae.FormationView {
	diplome := edu.Degree
	if edu.FieldOfStudy != "" {
		diplome = edu.Degree + " - " + edu.FieldOfStudy
	}
	return repae.FormationView{
		ID:            edu.ID,
		Diplome:       diplome,
		Etablissement: edu.SchoolName,
		Lieu:          edu.SchoolAddress,
		DateDebut:     YearMonth(edu.StartDate),
		DateFin:       yearMonthPtr(edu.EndDate),
		EnCours:       edu.EndDate == nil,
		Description:   edu.Description,
		Mention:       edu.Grade,
	}
}

func SkillToView(skill repae.AlumniSkill) repae.CompetenceView {
	return repae.CompetenceView{
		ID:     skill.ID,
		Nom:    skill.Name,
		Niveau: SkillLevelView(skill.Level),
	}
}

func ProjectToView(proj repae.Project) repae.PortfolioView {
	techs := make([]string, 0, len(proj.Skills))
	for _, s := range proj.Skills {
		techs = append(techs, s.Name)
	}
	return repae.PortfolioView{
		ID:              proj.ID,
		Titre:           proj.Title,
		Description:     proj.Description,
		ImageURL:        proj.ImageURL,
		Technologies:    techs,
		URLDemo:         proj.ProjectURL,
		DateRealisation: yearMonthPtr(proj.EndDate),
		Client:          proj.Client,
	}
}

// EnrichCurrentPosition copies the role and employer of the ongoing
// experience onto the profile. The first ongoing entry in the given order
// wins; with none the profile is returned unchanged.
func EnrichCurrentPosition(profile repae.Profile, experiences []repae.ExperienceView) repae.Profile {
	for _, exp := range experiences {
		if exp.EnCours {
			profile.PosteActuel = exp.Poste
			profile.EntrepriseActuelle = exp.Entreprise
			break
		}
	}
	return profile
}
