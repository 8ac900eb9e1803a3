package persona

// Archetype is a named class of reader with its canonical keywords. The
// first MatchKeywords entries double as detection cues.
type Archetype struct {
	Name     string
	Keywords []string
}

// MatchKeywords is how many leading archetype keywords are checked against
// the persona text.
const MatchKeywords = 3

// GeneralArchetype is reported when no archetype matches. It adds no keywords.
const GeneralArchetype = "general"

// Archetypes is checked in order; the first match wins.
var Archetypes = []Archetype{
	{"researcher", []string{"methodology", "analysis", "results", "conclusion", "literature", "study", "research", "hypothesis", "experiment", "data", "findings", "review", "survey"}},
	{"student", []string{"concept", "definition", "example", "problem", "solution", "exercise", "theory", "principle", "formula", "equation", "practice", "learn"}},
	{"analyst", []string{"trend", "performance", "metric", "revenue", "growth", "profit", "market", "strategy", "forecast", "benchmark", "comparison", "financial"}},
	{"investment", []string{"revenue", "profit", "growth", "market", "competition", "strategy", "risk", "return", "valuation", "investment", "portfolio"}},
	{"business", []string{"strategy", "market", "revenue", "profit", "growth", "customer", "product", "service", "competition", "opportunity"}},
	{"technical", []string{"implementation", "architecture", "design", "system", "algorithm", "performance", "optimization", "technology", "framework"}},
	{"academic", []string{"theory", "concept", "principle", "methodology", "analysis", "study", "research", "literature", "review", "hypothesis"}},
	{"chemistry", []string{"reaction", "mechanism", "kinetics", "thermodynamics", "equilibrium", "catalyst", "synthesis", "molecule", "compound", "bond"}},
	{"biology", []string{"cell", "protein", "gene", "organism", "metabolism", "pathway", "structure", "function", "evolution", "ecology"}},
	{"physics", []string{"force", "energy", "momentum", "wave", "particle", "field", "quantum", "relativity", "mechanics", "thermodynamics"}},
}

// augmentation adds keywords when any trigger phrase occurs in the job text.
type augmentation struct {
	triggers []string
	keywords []string
}

var augmentations = []augmentation{
	{[]string{"literature review"}, []string{"methodology", "results", "conclusion", "analysis", "comparison"}},
	{[]string{"exam", "study"}, []string{"concept", "definition", "example", "theory", "practice"}},
	{[]string{"financial", "revenue"}, []string{"revenue", "profit", "growth", "market", "financial"}},
}

// contextBonus rewards a section for vocabulary that suits the reader. The
// bonus applies when any cue is in the persona (or job) text and any term
// is in the section text.
type contextBonus struct {
	cues  []string
	terms []string
	bonus float64
}

var personaBonuses = []contextBonus{
	{[]string{"research"}, []string{"methodology", "results", "analysis", "conclusion", "study"}, 0.3},
	{[]string{"student"}, []string{"concept", "definition", "example", "theory", "principle"}, 0.3},
	{[]string{"analyst", "business", "investment"}, []string{"revenue", "profit", "market", "growth", "financial"}, 0.3},
}

var jobBonuses = []contextBonus{
	{[]string{"literature review"}, []string{"methodology", "approach", "results"}, 0.2},
	{[]string{"exam"}, []string{"concept", "definition", "example"}, 0.2},
	{[]string{"financial"}, []string{"revenue", "profit", "financial"}, 0.2},
}

// stopwords is the standard English stop-word list used by NLTK.
var stopwords = toSet(
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're", "you've", "you'll", "you'd",
	"your", "yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "she's", "her", "hers",
	"herself", "it", "it's", "its", "itself", "they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "that'll", "these", "those", "am", "is", "are", "was", "were", "be", "been",
	"being", "have", "has", "had", "having", "do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for", "with", "about", "against", "between",
	"into", "through", "during", "before", "after", "above", "below", "to", "from", "up", "down", "in", "out",
	"on", "off", "over", "under", "again", "further", "then", "once", "here", "there", "when", "where", "why",
	"how", "all", "any", "both", "each", "few", "more", "most", "other", "some", "such", "no", "nor", "not",
	"only", "own", "same", "so", "than", "too", "very", "s", "t", "can", "will", "just", "don", "don't",
	"should", "should've", "now", "d", "ll", "m", "o", "re", "ve", "y", "ain", "aren", "aren't", "couldn",
	"couldn't", "didn", "didn't", "doesn", "doesn't", "hadn", "hadn't", "hasn", "hasn't", "haven", "haven't",
	"isn", "isn't", "ma", "mightn", "mightn't", "mustn", "mustn't", "needn", "needn't", "shan", "shan't",
	"shouldn", "shouldn't", "wasn", "wasn't", "weren", "weren't", "won", "won't", "wouldn", "wouldn't",
)

func toSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
