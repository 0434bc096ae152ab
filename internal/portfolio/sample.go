package portfolio

// Sample is the demonstration document served before anything has been
// written, so a fresh install renders a complete page instead of an error.
func Sample() Document {
	return build(map[Section]any{
		SectionAbout: About{
			Name:           "Your Name",
			Title:          "Full Stack Developer",
			Description:    "Passionate developer creating amazing web experiences",
			Image:          "/assets/images/profile.jpg",
			Email:          "your.email@example.com",
			Phone:          "+1234567890",
			PresentAddress: "Your City",
			Hometown:       "Your Hometown",
			Availability:   "Open to opportunities",
			Github:         "https://github.com/yourusername",
			Linkedin:       "https://linkedin.com/in/yourusername",
			ResumeURL:      "/assets/resume.pdf",
		},
		SectionProjects: []Project{
			{
				ID:           "1",
				Title:        "Portfolio Website",
				Description:  "A single-page portfolio with an admin panel for editing its content.",
				Image:        "/assets/images/portfolio.jpg",
				Technologies: []string{"Go", "Gin", "React", "Tailwind CSS"},
				GithubURL:    "https://github.com/yourusername/portfolio",
				Status:       "Completed",
				Category:     []string{"Web"},
				Year:         "2025",
			},
		},
		SectionSkills: []Skill{
			{
				Name:        "Go",
				Category:    "Backend",
				Icon:        "/assets/icons/go.png",
				Experience:  "Intermediate",
				Description: "Services, CLIs and HTTP APIs",
				Features:    []string{"HTTP servers", "Concurrency", "Testing"},
			},
		},
		SectionExperience: []Experience{
			{
				ID:           "1",
				Position:     "Software Engineer",
				Company:      "Example Corp",
				Period:       "2023 - Present",
				Location:     "Remote",
				Description:  "Building and operating web services.",
				Technologies: []string{"Go", "PostgreSQL", "Docker"},
			},
		},
		SectionEducation: []Education{
			{
				ID:          "1",
				Degree:      "B.Sc in Computer Science and Engineering",
				Institution: "Example University",
				Period:      "2019 - 2023",
				Location:    "Your City",
				Description: "Software engineering, algorithms and data-driven systems.",
				GPA:         "3.80/4.00",
			},
		},
		SectionCourses: []Course{
			{
				ID:             "1",
				Title:          "Web Development Bootcamp",
				Platform:       "Online",
				Type:           "Professional",
				Description:    "Full stack web development from HTML to deployment.",
				Duration:       "3 months",
				CompletionDate: "June 2024",
				Instructor:     "Example Instructor",
				Skills:         []string{"HTML", "CSS", "JavaScript"},
			},
		},
		SectionResearch: []Research{
			{
				ID:          "1",
				Title:       "Sample Research Paper",
				Description: "A short abstract of the work.",
				Conference:  "Example Conference",
				Year:        "2024",
				Type:        "Conference Paper",
				Status:      "Published",
			},
		},
		SectionCompetitions: []Competition{
			{
				ID:          "1",
				Title:       "Campus Hackathon",
				Description: "Built a working prototype in 24 hours.",
				Organizer:   "Example University",
				Date:        "2024",
				Position:    "Finalist",
			},
		},
		SectionContact: Contact{
			Email:    "your.email@example.com",
			Phone:    "+1234567890",
			Location: "Your City, Country",
		},
	})
}
