package keyword

import (
	"log"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultTerms is the built-in technical vocabulary used when no YAML file is
// configured. A YAML file (a flat list of strings) can replace it entirely.
var defaultTerms = []string{
	"agile", "airflow", "angular", "ansible", "api design", "aws", "azure",
	"bash", "c#", "c++", "cassandra", "ci/cd", "css", "data analysis",
	"data engineering", "data science", "deep learning", "django", "docker",
	"dynamodb", "elasticsearch", "etl", "express", "fastapi", "figma", "flask",
	"gcp", "git", "go", "grafana", "graphql", "grpc", "hadoop", "helm",
	"hibernate", "html", "java", "javascript", "jenkins", "jira", "kafka",
	"kotlin", "kubernetes", "laravel", "linux", "machine learning", "matlab",
	"microservices", "mongodb", "mysql", "next.js", "nlp", "node.js", "numpy",
	"oauth", "pandas", "php", "postgresql", "prometheus", "python", "pytorch",
	"rabbitmq", "rails", "react", "redis", "rest", "ruby", "rust", "scala",
	"scikit-learn", "scrum", "snowflake", "spark", "spring", "spring boot",
	"sql", "sqlite", "swift", "tailwind", "tensorflow", "terraform",
	"typescript", "unit testing", "vue", ".net",
}

// LoadTerms reads the technical-terms dictionary from a YAML list at path.
// A missing or invalid file falls back to the built-in set rather than
// failing; the dictionary is configuration, not user input. The returned
// slice is lower-cased, deduplicated and sorted.
func LoadTerms(path string) []string {
	terms := defaultTerms
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Could not read technical terms file %s: %v, using built-in set", path, err)
		} else {
			var loaded []string
			if err := yaml.Unmarshal(data, &loaded); err != nil || len(loaded) == 0 {
				log.Printf("Invalid technical terms file %s, using built-in set", path)
			} else {
				terms = loaded
			}
		}
	}

	seen := make(map[string]struct{}, len(terms))
	normalized := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}
	sort.Strings(normalized)
	return normalized
}
