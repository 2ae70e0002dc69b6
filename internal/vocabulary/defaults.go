package vocabulary

// defaultSkills is the built-in catalog, grouped by area. Order matters:
// extraction reports skills in this order.
var defaultSkills = []Skill{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "php", "ruby", "go", "rust", "swift", "kotlin",
	"r", "scala", "perl", "bash", "powershell",

	// Web
	"html", "css", "react", "angular", "vue", "node.js", "express", "django", "flask", "spring", "laravel",
	"jquery", "bootstrap", "sass", "less", "webpack", "babel",

	// Databases
	"sql", "mysql", "postgresql", "mongodb", "redis", "elasticsearch", "oracle", "sqlite", "cassandra",
	"dynamodb", "neo4j", "firebase",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "github", "gitlab", "ci/cd",
	"terraform", "ansible", "chef", "puppet", "vagrant",

	// Data science and ML
	"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"matplotlib", "seaborn", "jupyter", "spark", "hadoop", "kafka",

	// Mobile
	"android", "ios", "react native", "flutter", "xamarin", "ionic",

	// Testing
	"unit testing", "integration testing", "selenium", "cypress", "jest", "pytest", "junit",

	// Other
	"linux", "windows", "macos", "rest api", "graphql", "microservices", "agile", "scrum",
	"project management", "leadership", "communication", "problem solving",
}

var defaultAliases = map[Skill][]string{
	"node.js":             {"nodejs", "node js", "node"},
	"c++":                 {"cpp", "c plus plus"},
	"c#":                  {"csharp", "c sharp"},
	"machine learning":    {"ml", "machinelearning"},
	"deep learning":       {"dl", "deeplearning"},
	"rest api":            {"rest", "api", "restful"},
	"ci/cd":               {"cicd", "continuous integration", "continuous deployment"},
	"unit testing":        {"unit test", "unit tests"},
	"integration testing": {"integration test", "integration tests"},
	"project management":  {"pm", "project manager"},
}

var defaultVocabulary = MustNew(DefaultEntries())

// DefaultEntries returns the built-in catalog as entries, ready to be
// extended or serialized.
func DefaultEntries() []Entry {
	entries := make([]Entry, len(defaultSkills))
	for i, s := range defaultSkills {
		entries[i] = Entry{Skill: s, Aliases: append([]string(nil), defaultAliases[s]...)}
	}
	return entries
}

// Default returns the shared built-in vocabulary.
func Default() *Vocabulary {
	return defaultVocabulary
}
