package extractor

import "strings"

// Fixed vocabularies backing field extraction. All tables are loaded once at
// startup and immutable thereafter; extraction control flow never depends on
// table contents, only on membership. Slices (not maps) keep scan order, and
// therefore output order, deterministic.

// positionKeywords flag a line as a job title.
var positionKeywords = []string{
	"chef", "directeur", "directrice", "manager", "développeur", "developpeur",
	"ingénieur", "ingenieur", "consultant", "chargé", "chargée", "charge de",
	"responsable",
}

// companyPrepositions and companyLegalForms flag a line as an employer name.
// Both are matched as whole words.
var companyPrepositions = []string{"à", "chez", "dans", "pour"}

var companyLegalForms = []string{"groupe", "sa", "sas", "sarl", "ei"}

// streetKeywords identify postal address lines and disqualify name candidates.
var streetKeywords = []string{
	"rue", "avenue", "boulevard", "place", "voie", "chemin", "impasse",
}

// birthKeywords mark a line as carrying a birth date.
var birthKeywords = []string{"naissance", "né le", "née le", "ne le", "nee le", "birth"}

// degreeKeywords and institutionKeywords drive education extraction.
var degreeKeywords = []string{
	"master", "licence", "baccalauréat", "baccalaureat", "bac", "bts", "dut",
	"mba", "doctorat", "ingénieur", "ingenieur", "développement",
	"developpement", "informatique", "commerce", "droit", "médecine", "medecine",
}

var institutionKeywords = []string{
	"université", "universite", "école", "ecole", "institut", "faculté",
	"faculte", "lycée", "lycee", "collège", "college",
}

// technicalSkills is the technology vocabulary shared by the skills scan and
// the per-description-line technology scan in experience sections.
var technicalSkills = []string{
	"javascript", "typescript", "python", "java", "c++", "c#", "php", "ruby",
	"golang", "rust", "swift", "kotlin", "react", "angular", "vue", "node",
	"django", "spring", "laravel", "symfony", "docker", "kubernetes", "aws",
	"azure", "gcp", "sql", "mysql", "postgresql", "mongodb", "redis", "git",
	"linux", "html", "css",
}

// softSkills is the soft-skill vocabulary (French resumes).
var softSkills = []string{
	"communication", "leadership", "autonomie", "rigueur", "créativité",
	"creativite", "adaptabilité", "adaptabilite", "organisation",
	"esprit d'équipe", "travail en équipe", "gestion de projet",
	"résolution de problèmes",
}

// languageNames covers French and English names of commonly listed languages.
var languageNames = []string{
	"français", "francais", "french", "anglais", "english", "espagnol",
	"spanish", "allemand", "german", "italien", "italian", "portugais",
	"portuguese", "chinois", "chinese", "japonais", "japanese", "arabe",
	"arabic", "russe", "russian", "néerlandais", "neerlandais", "dutch",
}

func containsAny(line string, terms []string) bool {
	lower := strings.ToLower(line)
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func containsAnyWord(line string, words []string) bool {
	fields := strings.Fields(strings.ToLower(line))
	for _, f := range fields {
		f = strings.Trim(f, ".,;:()")
		for _, w := range words {
			if f == w {
				return true
			}
		}
	}
	return false
}

// titleCase uppercases the first rune of a vocabulary term for presentation.
func titleCase(term string) string {
	r := []rune(term)
	if len(r) == 0 {
		return term
	}
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
