// Package parsing extracts skills, requirement strength, experience years, seniority and
// industry from normalized resume and job posting text. Everything here is deterministic.
package parsing

import (
	"sort"
	"strings"
	"sync"

	"github.com/krishnachadda/ResumeTailor/internal/ingestion"
)

// Skill is a canonical skill name plus the alternate spellings that map to it
type Skill struct {
	Name    string
	Aliases []string
}

// defaultSkills is the curated dictionary: languages, platforms, tools, methods and certifications
// across the supported industries. Aliases are matched with the same word-boundary rules as names.
var defaultSkills = []Skill{
	// languages
	{Name: "Go", Aliases: []string{"golang", "go lang"}},
	{Name: "Python"},
	{Name: "Java"},
	{Name: "JavaScript", Aliases: []string{"js", "ecmascript"}},
	{Name: "TypeScript"},
	{Name: "C++", Aliases: []string{"cpp"}},
	{Name: "C#", Aliases: []string{"csharp"}},
	{Name: "Rust"},
	{Name: "Ruby"},
	{Name: "PHP"},
	{Name: "Kotlin"},
	{Name: "Swift"},
	{Name: "Scala"},
	{Name: "SQL"},
	{Name: "Bash", Aliases: []string{"shell scripting"}},
	{Name: "MATLAB"},

	// frameworks and runtimes
	{Name: "React", Aliases: []string{"react.js", "reactjs"}},
	{Name: "Vue", Aliases: []string{"vue.js", "vuejs"}},
	{Name: "Angular"},
	{Name: "Node.js", Aliases: []string{"nodejs", "node"}},
	{Name: "Django"},
	{Name: "Flask"},
	{Name: "Spring Boot"},
	{Name: "ASP.NET", Aliases: []string{"dotnet"}},
	{Name: "GraphQL"},
	{Name: "REST APIs", Aliases: []string{"restful", "rest api", "restful apis"}},
	{Name: "gRPC"},
	{Name: "Microservices", Aliases: []string{"microservice"}},

	// data and machine learning
	{Name: "PostgreSQL", Aliases: []string{"postgres"}},
	{Name: "MySQL"},
	{Name: "MongoDB", Aliases: []string{"mongo"}},
	{Name: "Redis"},
	{Name: "Kafka", Aliases: []string{"apache kafka"}},
	{Name: "RabbitMQ"},
	{Name: "Elasticsearch"},
	{Name: "Spark", Aliases: []string{"apache spark", "pyspark"}},
	{Name: "Hadoop"},
	{Name: "Snowflake"},
	{Name: "Airflow", Aliases: []string{"apache airflow"}},
	{Name: "Machine Learning", Aliases: []string{"ml"}},
	{Name: "Deep Learning"},
	{Name: "Natural Language Processing", Aliases: []string{"nlp"}},
	{Name: "Computer Vision"},
	{Name: "TensorFlow"},
	{Name: "PyTorch"},
	{Name: "scikit-learn", Aliases: []string{"sklearn"}},
	{Name: "Pandas"},
	{Name: "Data Analysis", Aliases: []string{"data analytics"}},
	{Name: "Statistics", Aliases: []string{"statistical analysis"}},
	{Name: "Tableau"},
	{Name: "Power BI", Aliases: []string{"powerbi"}},
	{Name: "Excel", Aliases: []string{"microsoft excel", "ms excel"}},

	// cloud and operations
	{Name: "AWS", Aliases: []string{"amazon web services"}},
	{Name: "GCP", Aliases: []string{"google cloud", "google cloud platform"}},
	{Name: "Azure", Aliases: []string{"microsoft azure"}},
	{Name: "Docker"},
	{Name: "Kubernetes", Aliases: []string{"k8s"}},
	{Name: "Terraform"},
	{Name: "Ansible"},
	{Name: "CI/CD", Aliases: []string{"continuous integration", "continuous delivery"}},
	{Name: "Jenkins"},
	{Name: "GitHub Actions"},
	{Name: "Git"},
	{Name: "Linux"},
	{Name: "Distributed Systems"},
	{Name: "System Design"},
	{Name: "Observability", Aliases: []string{"monitoring"}},
	{Name: "Security", Aliases: []string{"cybersecurity", "information security"}},

	// practices and leadership
	{Name: "Agile"},
	{Name: "Scrum"},
	{Name: "Project Management"},
	{Name: "Product Management"},
	{Name: "Stakeholder Management"},
	{Name: "Leadership", Aliases: []string{"team leadership", "people management"}},
	{Name: "Mentoring", Aliases: []string{"mentorship"}},
	{Name: "Communication", Aliases: []string{"communication skills"}},
	{Name: "Strategic Planning", Aliases: []string{"strategy development"}},
	{Name: "Budgeting", Aliases: []string{"budget management"}},
	{Name: "PMP"},

	// finance and consulting
	{Name: "Financial Modeling", Aliases: []string{"financial modelling"}},
	{Name: "Financial Analysis"},
	{Name: "Forecasting"},
	{Name: "Accounting"},
	{Name: "GAAP"},
	{Name: "Risk Management"},
	{Name: "Valuation"},
	{Name: "CFA"},
	{Name: "CPA"},
	{Name: "Due Diligence"},
	{Name: "Change Management"},
	{Name: "Process Improvement"},

	// marketing, sales and retail
	{Name: "SEO", Aliases: []string{"search engine optimization"}},
	{Name: "SEM"},
	{Name: "Content Marketing"},
	{Name: "Social Media Marketing", Aliases: []string{"social media"}},
	{Name: "Google Analytics"},
	{Name: "Email Marketing"},
	{Name: "Market Research"},
	{Name: "Brand Strategy", Aliases: []string{"branding"}},
	{Name: "Go-to-Market Strategy", Aliases: []string{"go to market", "gtm"}},
	{Name: "Salesforce"},
	{Name: "HubSpot"},
	{Name: "CRM"},
	{Name: "Lead Generation", Aliases: []string{"prospecting"}},
	{Name: "Negotiation"},
	{Name: "Account Management"},
	{Name: "Customer Service", Aliases: []string{"customer support"}},
	{Name: "Merchandising", Aliases: []string{"visual merchandising"}},
	{Name: "Inventory Management"},
	{Name: "Point of Sale", Aliases: []string{"pos"}},
	{Name: "E-commerce", Aliases: []string{"ecommerce"}},

	// design
	{Name: "Figma"},
	{Name: "Sketch"},
	{Name: "Adobe Photoshop", Aliases: []string{"photoshop"}},
	{Name: "Adobe Illustrator", Aliases: []string{"illustrator"}},
	{Name: "Adobe Creative Suite", Aliases: []string{"creative suite", "creative cloud"}},
	{Name: "UX Research", Aliases: []string{"user research"}},
	{Name: "UI Design", Aliases: []string{"interface design"}},
	{Name: "Prototyping", Aliases: []string{"wireframing"}},
	{Name: "Typography"},

	// healthcare and education
	{Name: "Patient Care"},
	{Name: "HIPAA"},
	{Name: "EHR", Aliases: []string{"electronic health records", "emr"}},
	{Name: "Clinical Research"},
	{Name: "BLS", Aliases: []string{"basic life support"}},
	{Name: "Curriculum Development", Aliases: []string{"curriculum design"}},
	{Name: "Classroom Management"},
	{Name: "Instructional Design"},
	{Name: "Research", Aliases: []string{"research methods"}},
	{Name: "Grant Writing"},
	{Name: "Peer Review"},

	// engineering and manufacturing
	{Name: "AutoCAD"},
	{Name: "SolidWorks"},
	{Name: "CAD", Aliases: []string{"computer aided design"}},
	{Name: "Lean Manufacturing"},
	{Name: "Six Sigma", Aliases: []string{"lean six sigma"}},
	{Name: "Quality Assurance", Aliases: []string{"qa", "quality control"}},
	{Name: "Supply Chain Management", Aliases: []string{"supply chain"}},
	{Name: "PLC Programming", Aliases: []string{"plc"}},

	// legal
	{Name: "Contract Law", Aliases: []string{"contract drafting", "contract negotiation"}},
	{Name: "Litigation"},
	{Name: "Regulatory Compliance", Aliases: []string{"compliance"}},
	{Name: "Legal Research"},
	{Name: "Intellectual Property", Aliases: []string{"ip law"}},
}

// phrase is one matchable spelling of a canonical skill, in token form
type phrase struct {
	tokens    []string
	canonical string
}

// Dictionary matches skill phrases against token streams. It is immutable after construction.
type Dictionary struct {
	byFirst   map[string][]phrase
	canonical map[string]string
}

// NewDictionary builds a dictionary. Later entries do not override an alias already claimed by an earlier one.
func NewDictionary(skills []Skill) *Dictionary {
	d := &Dictionary{
		byFirst:   make(map[string][]phrase),
		canonical: make(map[string]string),
	}
	for _, s := range skills {
		for _, spelling := range append([]string{s.Name}, s.Aliases...) {
			tokens := ingestion.Tokenize(spelling)
			if len(tokens) == 0 {
				continue
			}
			key := strings.Join(tokens, " ")
			if _, taken := d.canonical[key]; taken {
				continue
			}
			d.canonical[key] = s.Name
			d.byFirst[tokens[0]] = append(d.byFirst[tokens[0]], phrase{tokens: tokens, canonical: s.Name})
		}
	}
	// longest phrase first so "machine learning" is tried before shorter overlaps
	for first := range d.byFirst {
		sort.SliceStable(d.byFirst[first], func(i, j int) bool {
			return len(d.byFirst[first][i].tokens) > len(d.byFirst[first][j].tokens)
		})
	}
	return d
}

var defaultDictionary = sync.OnceValue(func() *Dictionary {
	return NewDictionary(defaultSkills)
})

// DefaultDictionary returns the shared built-in dictionary
func DefaultDictionary() *Dictionary {
	return defaultDictionary()
}

// Count scans tokens left to right, consuming the longest phrase at each position,
// and returns how many times each canonical skill occurred.
func (d *Dictionary) Count(tokens []string) map[string]int {
	counts := make(map[string]int)
	for i := 0; i < len(tokens); {
		p, ok := d.longestAt(tokens, i)
		if !ok {
			i++
			continue
		}
		counts[p.canonical]++
		i += len(p.tokens)
	}
	return counts
}

// listFillers may sit between skills in a bare skill list such as "Go and Rust"
var listFillers = map[string]bool{"and": true, "or": true, "&": true}

// IsSkillList reports whether every token belongs to a skill phrase or a list filler,
// with at least one skill present.
func (d *Dictionary) IsSkillList(tokens []string) bool {
	found := false
	for i := 0; i < len(tokens); {
		if p, ok := d.longestAt(tokens, i); ok {
			found = true
			i += len(p.tokens)
			continue
		}
		if !listFillers[tokens[i]] {
			return false
		}
		i++
	}
	return found
}

func (d *Dictionary) longestAt(tokens []string, i int) (phrase, bool) {
	for _, p := range d.byFirst[tokens[i]] {
		if i+len(p.tokens) > len(tokens) {
			continue
		}
		matched := true
		for j, tok := range p.tokens {
			if tokens[i+j] != tok {
				matched = false
				break
			}
		}
		if matched {
			return p, true
		}
	}
	return phrase{}, false
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
