package project

import "time"

// DefaultProjects is the starter directory installed on first run.
func DefaultProjects(now time.Time) []Project {
	mk := func(code, name, category string, budget float64) Project {
		return Project{
			Code:      code,
			Name:      name,
			Category:  category,
			Status:    StatusActive,
			Budget:    budget,
			CreatedBy: "system",
			CreatedAt: now,
		}
	}
	return []Project{
		mk("DEV-001", "Frontend Development", "Development", 80),
		mk("DEV-002", "Backend Development", "Development", 120),
		mk("DEV-003", "Database Design", "Development", 40),
		mk("TEST-001", "Unit Testing", "Testing", 60),
		mk("TEST-002", "Integration Testing", "Testing", 80),
		mk("TEST-003", "User Acceptance Testing", "Testing", 100),
		mk("DESIGN-001", "UI/UX Design", "Design", 60),
		mk("DESIGN-002", "Graphic Design", "Design", 40),
		mk("DOCS-001", "Technical Documentation", "Documentation", 30),
		mk("DOCS-002", "User Documentation", "Documentation", 25),
		mk("MEET-001", "Team Meetings", "Meeting", 0),
		mk("MEET-002", "Client Meetings", "Meeting", 0),
		mk("ADMIN-001", "Administrative Tasks", "Other", 0),
		mk("ADMIN-002", "Project Planning", "Other", 0),
		mk("SUPPORT-001", "Technical Support", "Other", 0),
		mk("SUPPORT-002", "Bug Fixes", "Other", 0),
		mk("RESEARCH-001", "Technology Research", "Research", 50),
		mk("RESEARCH-002", "Market Research", "Research", 40),
		mk("TRAINING-001", "Employee Training", "Other", 0),
		mk("TRAINING-002", "Skill Development", "Other", 0),
	}
}
