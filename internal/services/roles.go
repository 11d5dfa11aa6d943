package services

import (
	"strings"

	"github.com/skillup/backend/internal/models"
)

// defaultRoleSkills is used for roles missing from roleSkills
const defaultRoleSkills = "Technical Skills"

var roleSkills = map[string]string{
	"frontend-developer":   "React.js, DOM manipulation, CSS Flexbox",
	"backend-developer":    "Node.js, Express, REST APIs, MongoDB",
	"full-stack-developer": "MERN stack, deployment strategies, authentication",
	"data-analyst":         "SQL, Excel, Data Visualization, Power BI",
	"devops-engineer":      "CI/CD, Docker, Kubernetes, AWS",
	"ui-ux-designer":       "Figma, user journey, wireframing, accessibility",
	"java-developer":       "Spring Boot, Hibernate, Microservices, JPA",
	"qa-engineer":          "Selenium, TestNG, Automation, API Testing",
	"python-developer":     "Django, Flask, FastAPI, Pandas",
	"ml-engineer":          "TensorFlow, PyTorch, Scikit-learn, NLP",
	"cloud-engineer":       "AWS, Azure, GCP, Terraform",
}

// RoleTitle returns the display title of a role slug
func RoleTitle(slug string) string {
	return models.SlugTitle(slug)
}

// RoleSkills returns the skills a role is interviewed on
func RoleSkills(slug string) string {
	if skills, ok := roleSkills[strings.ToLower(slug)]; ok {
		return skills
	}
	return defaultRoleSkills
}
