package repae

// View models consumed by the profile pages. Field vocabulary follows the
// original platform (French), so the rendering side stays unchanged.

type Availability string

const (
	Available           Availability = "disponible"
	Employed            Availability = "en_poste"
	OpenToOpportunities Availability = "ouvert_opportunites"
)

type Profile struct {
	ID                 string       `json:"id"`
	Prenom             string       `json:"prenom"`
	Nom                string       `json:"nom"`
	Email              string       `json:"email"`
	Telephone          string       `json:"telephone"`
	PhotoURL           string       `json:"photo_url"`
	CoverURL           string       `json:"cover_url,omitempty"`
	PosteActuel        string       `json:"poste_actuel"`
	EntrepriseActuelle string       `json:"entreprise_actuelle"`
	Promotion          int          `json:"promotion"`
	Pays               string       `json:"pays"`
	Ville              string       `json:"ville"`
	Adresse            string       `json:"adresse,omitempty"`
	Disponibilite      Availability `json:"disponibilite"`
	Biographie         string       `json:"biographie"`
	SiteWeb            string       `json:"site_web,omitempty"`
	LinkedinURL        string       `json:"linkedin_url,omitempty"`
	TwitterURL         string       `json:"twitter_url,omitempty"`
	GithubURL          string       `json:"github_url,omitempty"`
	Competences        []string     `json:"competences,omitempty"`
	DateInscription    string       `json:"date_inscription"`
	DerniereConnexion  string       `json:"derniere_connexion"`
}

type ExperienceView struct {
	ID          string       `json:"id"`
	Poste       string       `json:"poste"`
	Entreprise  string       `json:"entreprise"`
	Lieu        string       `json:"lieu"`
	TypeContrat ContractType `json:"type_contrat"`
	DateDebut   string       `json:"date_debut"`
	DateFin     string       `json:"date_fin,omitempty"`
	EnCours     bool         `json:"en_cours"`
	Description string       `json:"description"`
}

type FormationView struct {
	ID            string `json:"id"`
	Diplome       string `json:"diplome"`
	Etablissement string `json:"etablissement"`
	Lieu          string `json:"lieu"`
	DateDebut     string `json:"date_debut"`
	DateFin       string `json:"date_fin,omitempty"`
	EnCours       bool   `json:"en_cours"`
	Description   string `json:"description,omitempty"`
	Mention       string `json:"mention,omitempty"`
}

type CompetenceLevel string

const (
	CompetenceDebutant      CompetenceLevel = "debutant"
	CompetenceIntermediaire CompetenceLevel = "intermediaire"
	CompetenceAvance        CompetenceLevel = "avance"
	CompetenceExpert        CompetenceLevel = "expert"
)

type CompetenceView struct {
	ID     string          `json:"id"`
	Nom    string          `json:"nom"`
	Niveau CompetenceLevel `json:"niveau"`
}

type PortfolioView struct {
	ID              string   `json:"id"`
	Titre           string   `json:"titre"`
	Description     string   `json:"description"`
	ImageURL        string   `json:"image_url"`
	Technologies    []string `json:"technologies"`
	URLDemo         string   `json:"url_demo,omitempty"`
	DateRealisation string   `json:"date_realisation"`
	Client          string   `json:"client,omitempty"`
}
