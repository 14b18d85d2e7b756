package catalog

import "github.com/arturoeanton/roadmapai/internal/domain"

func webDevelopmentNodes() []domain.RoadmapNode {
	return []domain.RoadmapNode{
		{
			ID:            "html",
			Title:         "HTML Fundamentals",
			Description:   "Learn the structure and semantics of HTML, the foundation of web development.",
			VideoID:       "qz0aGYrrlhU",
			VideoTitle:    "HTML Tutorial for Beginners",
			Level:         1,
			Prerequisites: []string{},
			Children:      []string{"css", "accessibility"},
			Category:      domain.CategoryFrontend,
			EstimatedTime: "2-3 weeks",
			Difficulty:    domain.DifficultyBeginner,
			Resources: []domain.Resource{
				{ID: "html-mdn", Title: "MDN HTML Documentation", URL: "https://developer.mozilla.org/en-US/docs/Web/HTML", Type: domain.ResourceDocumentation},
				{ID: "html-w3schools", Title: "W3Schools HTML Tutorial", URL: "https://www.w3schools.com/html/", Type: domain.ResourceTutorial},
			},
		},
		{
			ID:            "css",
			Title:         "CSS Styling",
			Description:   "Master CSS for beautiful, responsive web designs and layouts.",
			VideoID:       "1Rs2ND1ryYc",
			VideoTitle:    "CSS Tutorial for Beginners",
			Level:         1,
			Prerequisites: []string{"html"},
			Children:      []string{"javascript", "responsive-design"},
			Category:      domain.CategoryFrontend,
			EstimatedTime: "3-4 weeks",
			Difficulty:    domain.DifficultyBeginner,
			Resources: []domain.Resource{
				{ID: "css-flexbox", Title: "CSS Flexbox Guide", URL: "https://css-tricks.com/snippets/css/a-guide-to-flexbox/", Type: domain.ResourceArticle},
				{ID: "css-grid", Title: "CSS Grid Layout", URL: "https://css-tricks.com/snippets/css/complete-guide-grid/", Type: domain.ResourceArticle},
			},
		},
		{
			ID:            "javascript",
			Title:         "JavaScript Programming",
			Description:   "Learn JavaScript, the programming language that powers the web.",
			VideoID:       "PkZNo7MFNFg",
			VideoTitle:    "JavaScript Tutorial for Beginners",
			Level:         2,
			Prerequisites: []string{"html", "css"},
			Children:      []string{"react", "nodejs"},
			Category:      domain.CategoryFrontend,
			EstimatedTime: "4-6 weeks",
			Difficulty:    domain.DifficultyIntermediate,
			Resources: []domain.Resource{
				{ID: "js-mdn", Title: "MDN JavaScript Guide", URL: "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide", Type: domain.ResourceDocumentation},
				{ID: "js-es6", Title: "ES6 Features", URL: "https://es6-features.org/", Type: domain.ResourceDocumentation},
			},
		},
		{
			ID:            "react",
			Title:         "React Framework",
			Description:   "Build dynamic user interfaces with React, the most popular frontend library.",
			VideoID:       "w7ejDZ8SWv8",
			VideoTitle:    "React Tutorial for Beginners",
			Level:         3,
			Prerequisites: []string{"javascript"},
			Children:      []string{"nextjs", "state-management"},
			Category:      domain.CategoryFrontend,
			EstimatedTime: "4-5 weeks",
			Difficulty:    domain.DifficultyIntermediate,
			Resources: []domain.Resource{
				{ID: "react-docs", Title: "React Official Documentation", URL: "https://react.dev/", Type: domain.ResourceDocumentation},
				{ID: "react-patterns", Title: "React Patterns", URL: "https://reactpatterns.com/", Type: domain.ResourceArticle},
			},
		},
		{
			ID:            "nodejs",
			Title:         "Node.js Backend",
			Description:   "Build server-side applications with Node.js and JavaScript.",
			VideoID:       "fBNz5xF-Kx4",
			VideoTitle:    "Node.js Tutorial for Beginners",
			Level:         3,
			Prerequisites: []string{"javascript"},
			Children:      []string{"express", "database"},
			Category:      domain.CategoryBackend,
			EstimatedTime: "3-4 weeks",
			Difficulty:    domain.DifficultyIntermediate,
			Resources: []domain.Resource{
				{ID: "nodejs-docs", Title: "Node.js Documentation", URL: "https://nodejs.org/en/docs/", Type: domain.ResourceDocumentation},
				{ID: "nodejs-best-practices", Title: "Node.js Best Practices", URL: "https://github.com/goldbergyoni/nodebestpractices", Type: domain.ResourceArticle},
			},
		},
		{
			ID:            "express",
			Title:         "Express.js Framework",
			Description:   "Create RESTful APIs and web applications with Express.js.",
			VideoID:       "L72fhGm1tfE",
			VideoTitle:    "Express.js Tutorial",
			Level:         4,
			Prerequisites: []string{"nodejs"},
			Children:      []string{"authentication", "api-design"},
			Category:      domain.CategoryBackend,
			EstimatedTime: "2-3 weeks",
			Difficulty:    domain.DifficultyIntermediate,
			Resources: []domain.Resource{
				{ID: "express-docs", Title: "Express.js Documentation", URL: "https://expressjs.com/", Type: domain.ResourceDocumentation},
				{ID: "express-middleware", Title: "Express Middleware Guide", URL: "https://expressjs.com/en/guide/using-middleware.html", Type: domain.ResourceDocumentation},
			},
		},
		{
			ID:            "database",
			Title:         "Database Design",
			Description:   "Learn database fundamentals, SQL, and data modeling.",
			VideoID:       "HXV3zeQKqGY",
			VideoTitle:    "SQL Tutorial for Beginners",
			Level:         4,
			Prerequisites: []string{"nodejs"},
			Children:      []string{"mongodb", "postgresql"},
			Category:      domain.CategoryDatabase,
			EstimatedTime: "3-4 weeks",
			Difficulty:    domain.DifficultyIntermediate,
			Resources: []domain.Resource{
				{ID: "sql-tutorial", Title: "SQL Tutorial", URL: "https://www.w3schools.com/sql/", Type: domain.ResourceTutorial},
				{ID: "database-design", Title: "Database Design Principles", URL: "https://www.lucidchart.com/pages/database-diagram/database-design", Type: domain.ResourceArticle},
			},
		},
		{
			ID:            "nextjs",
			Title:         "Next.js Framework",
			Description:   "Build full-stack React applications with Next.js.",
			VideoID:       "mTz0GXjfNN0",
			VideoTitle:    "Next.js Tutorial for Beginners",
			Level:         4,
			Prerequisites: []string{"react"},
			Children:      []string{"deployment", "performance"},
			Category:      domain.CategoryFrontend,
			EstimatedTime: "3-4 weeks",
			Difficulty:    domain.DifficultyIntermediate,
			Resources: []domain.Resource{
				{ID: "nextjs-docs", Title: "Next.js Documentation", URL: "https://nextjs.org/docs", Type: domain.ResourceDocumentation},
				{ID: "nextjs-patterns", Title: "Next.js Patterns", URL: "https://nextjs.org/docs/basic-features/pages", Type: domain.ResourceDocumentation},
			},
		},
		{
			ID:            "authentication",
			Title:         "Authentication & Security",
			Description:   "Implement secure user authentication and authorization.",
			VideoID:       "F-sFp_AvHc8",
			VideoTitle:    "Authentication Tutorial",
			Level:         5,
			Prerequisites: []string{"express"},
			Children:      []string{"jwt", "oauth"},
			Category:      domain.CategoryBackend,
			EstimatedTime: "2-3 weeks",
			Difficulty:    domain.DifficultyAdvanced,
			Resources: []domain.Resource{
				{ID: "auth-guide", Title: "Authentication Guide", URL: "https://auth0.com/learn/authentication-and-authorization/", Type: domain.ResourceArticle},
				{ID: "jwt-guide", Title: "JWT Guide", URL: "https://jwt.io/introduction", Type: domain.ResourceDocumentation},
			},
		},
		{
			ID:            "deployment",
			Title:         "Deployment & DevOps",
			Description:   "Deploy applications and set up CI/CD pipelines.",
			VideoID:       "eB0nUzAI7M8",
			VideoTitle:    "Deployment Tutorial",
			Level:         5,
			Prerequisites: []string{"nextjs"},
			Children:      []string{"docker", "aws"},
			Category:      domain.CategoryDevOps,
			EstimatedTime: "3-4 weeks",
			Difficulty:    domain.DifficultyAdvanced,
			Resources: []domain.Resource{
				{ID: "vercel-deploy", Title: "Vercel Deployment Guide", URL: "https://vercel.com/docs/deployments", Type: domain.ResourceDocumentation},
				{ID: "docker-guide", Title: "Docker for Developers", URL: "https://docs.docker.com/get-started/", Type: domain.ResourceDocumentation},
			},
		},
	}
}

func webDevelopmentMindMap() domain.MindMap {
	return domain.MindMap{
		Nodes: []domain.MindMapNode{
			mindMapNode("html", 100, 100, "HTML", "Structure", domain.CategoryFrontend),
			mindMapNode("css", 300, 100, "CSS", "Styling", domain.CategoryFrontend),
			mindMapNode("javascript", 500, 100, "JavaScript", "Logic", domain.CategoryFrontend),
			mindMapNode("react", 700, 100, "React", "Framework", domain.CategoryFrontend),
			mindMapNode("nodejs", 500, 300, "Node.js", "Backend", domain.CategoryBackend),
			mindMapNode("express", 700, 300, "Express", "API", domain.CategoryBackend),
			mindMapNode("database", 300, 300, "Database", "Data", domain.CategoryDatabase),
			mindMapNode("nextjs", 900, 100, "Next.js", "Full-stack", domain.CategoryFrontend),
			mindMapNode("deployment", 900, 300, "Deployment", "DevOps", domain.CategoryDevOps),
		},
		Edges: []domain.MindMapEdge{
			{ID: "e1-2", Source: "html", Target: "css", Type: "smoothstep"},
			{ID: "e2-3", Source: "css", Target: "javascript", Type: "smoothstep"},
			{ID: "e3-4", Source: "javascript", Target: "react", Type: "smoothstep"},
			{ID: "e3-5", Source: "javascript", Target: "nodejs", Type: "smoothstep"},
			{ID: "e5-6", Source: "nodejs", Target: "express", Type: "smoothstep"},
			{ID: "e5-7", Source: "nodejs", Target: "database", Type: "smoothstep"},
			{ID: "e4-8", Source: "react", Target: "nextjs", Type: "smoothstep"},
			{ID: "e8-9", Source: "nextjs", Target: "deployment", Type: "smoothstep"},
		},
	}
}

func mindMapNode(id string, x, y int, label, description string, category domain.NodeCategory) domain.MindMapNode {
	return domain.MindMapNode{
		ID:       id,
		Position: domain.MindMapPosition{X: x, Y: y},
		Data:     domain.MindMapData{Label: label, Description: description, Category: category},
		Type:     "default",
	}
}
