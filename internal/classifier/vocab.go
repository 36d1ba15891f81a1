package classifier

import "cvscan/pkg/models"

// keywordSet binds a section type to the header stems that announce it.
type keywordSet struct {
	Type  models.SectionType
	Stems []string
}

// sectionKeywords is evaluated in slice order; the first type with a matching
// stem claims the line. Loaded once at startup, immutable thereafter. Stems
// carry both accented and unaccented spellings because OCR engines frequently
// drop diacritics.
var sectionKeywords = []keywordSet{
	{models.SectionExperience, []string{
		"expérience", "experience", "emploi", "professionnel", "professionnelle",
		"carrière", "carriere", "poste occupé", "parcours",
	}},
	{models.SectionEducation, []string{
		"formation", "éducation", "education", "diplôme", "diplome",
		"université", "universite", "école", "ecole", "études", "etudes",
		"scolarité", "scolarite", "cursus",
	}},
	{models.SectionSkills, []string{
		"compétence", "competence", "skills", "savoir-faire",
		"outils maîtrisés", "outils maitrises", "logiciels",
	}},
	{models.SectionSummary, []string{
		"profil", "résumé", "resume", "objectif", "présentation",
		"presentation", "à propos", "a propos", "summary",
	}},
	{models.SectionProjects, []string{
		"projets", "projet", "réalisations", "realisations", "portfolio",
	}},
	{models.SectionLanguages, []string{
		"langues", "languages", "langue",
	}},
	{models.SectionCertifications, []string{
		"certifications", "certification", "certificats", "habilitations",
	}},
}

// employerHints and positionHints feed the date-context rule: a dated line
// near one of these words is assumed to belong to a work-history block.
var employerHints = []string{
	"chez", "entreprise", "société", "societe", "groupe", "agence", "cabinet",
	"sarl", "sas", "startup", "client",
}

var positionHints = []string{
	"chef", "directeur", "directrice", "manager", "développeur", "developpeur",
	"ingénieur", "ingenieur", "consultant", "chargé", "chargee", "responsable",
	"technicien", "assistant", "stagiaire", "alternant",
}

// institutionHints and degreeHints steer dated lines toward education.
var institutionHints = []string{
	"université", "universite", "école", "ecole", "institut", "faculté",
	"faculte", "lycée", "lycee", "collège", "college", "campus",
}

var degreeHints = []string{
	"master", "licence", "baccalauréat", "baccalaureat", "bac", "bts", "dut",
	"but", "mba", "doctorat", "ingénieur", "ingenieur", "diplôme", "diplome",
}

// bulletPrefixes are the glyphs that open a list item in scanned resumes.
var bulletPrefixes = []string{"-", "•", "◦", "▪", "▸", "▶", "*"}
