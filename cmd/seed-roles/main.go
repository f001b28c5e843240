package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mockmate/mockmate-backend/internal/config"
	"github.com/mockmate/mockmate-backend/internal/database"
	"github.com/mockmate/mockmate-backend/internal/logger"
	"github.com/mockmate/mockmate-backend/internal/model"
	"github.com/mockmate/mockmate-backend/internal/repository"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	roleRepo := repository.NewRoleRepository(pool)

	fmt.Println("=== Seeding Role Catalog ===")

	created := 0
	for _, role := range catalogRoles() {
		role := role
		if err := roleRepo.Create(ctx, &role); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				fmt.Printf("Role already exists: %s\n", role.Name)
				continue
			}
			log.Fatal().Err(err).Str("role", role.Name).Msg("Failed to create role")
		}
		created++
		fmt.Printf("Created role: %s\n", role.Name)
	}

	fmt.Printf("\nSuccessfully loaded %d new roles\n", created)
}

func catalogRoles() []model.RoleCatalog {
	return []model.RoleCatalog{
		{
			Name:     "Backend Engineer",
			Category: "backend",
			Keywords: []string{"python", "django", "flask", "fastapi", "node.js", "express", "java", "spring", "go", "api", "rest", "graphql", "postgresql", "mysql", "mongodb", "redis", "docker", "kubernetes", "aws", "microservices", "serverless"},
		},
		{
			Name:     "Frontend Developer",
			Category: "frontend",
			Keywords: []string{"javascript", "typescript", "react", "vue", "angular", "html", "css", "sass", "webpack", "vite", "next.js", "nuxt", "responsive", "ui", "ux", "accessibility", "performance"},
		},
		{
			Name:     "Full-stack Developer",
			Category: "fullstack",
			Keywords: []string{"javascript", "python", "react", "vue", "node.js", "django", "express", "postgresql", "mongodb", "rest api", "graphql", "aws", "docker", "ci/cd"},
		},
		{
			Name:     "DevOps Engineer",
			Category: "devops",
			Keywords: []string{"docker", "kubernetes", "ci/cd", "jenkins", "gitlab", "github actions", "aws", "azure", "terraform", "ansible", "linux", "bash", "python", "monitoring", "logging"},
		},
		{
			Name:     "Data Scientist",
			Category: "data",
			Keywords: []string{"python", "r", "sql", "pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "jupyter", "machine learning", "deep learning", "statistics", "data analysis", "visualization"},
		},
		{
			Name:     "Data Engineer",
			Category: "data",
			Keywords: []string{"python", "sql", "spark", "hadoop", "kafka", "airflow", "etl", "data pipeline", "postgresql", "mongodb", "aws", "azure", "data warehouse", "data lake"},
		},
		{
			Name:     "Mobile Developer",
			Category: "mobile",
			Keywords: []string{"swift", "kotlin", "react native", "flutter", "ios", "android", "xcode", "android studio", "mobile ui", "api integration", "firebase"},
		},
		{
			Name:     "QA Engineer",
			Category: "qa",
			Keywords: []string{"testing", "automation", "selenium", "cypress", "jest", "pytest", "test planning", "bug tracking", "jira", "agile", "test cases"},
		},
	}
}
