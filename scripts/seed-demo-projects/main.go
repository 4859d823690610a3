package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/loganlanou/ciber-client/internal/demo"
	"github.com/loganlanou/ciber-client/service"
)

const defaultProjects = 6

var techPool = []string{"Go", "TypeScript", "Astro", "React", "Spring Boot", "PostgreSQL", "SQLite", "Docker", "Tailwind"}

// Seeds the local demo project list with fake projects owned by the logged
// in user. Run "ciber login" first.
func main() {
	count := defaultProjects
	if len(os.Args) > 1 {
		n, err := strconv.Atoi(os.Args[1])
		if err != nil || n <= 0 {
			log.Fatalf("Invalid project count %q", os.Args[1])
		}
		count = n
	}

	config, err := service.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	svc := service.Open(config)
	defer svc.Close()

	ctx := context.Background()
	for i := 0; i < count; i++ {
		project, err := svc.Projects.Create(ctx, fakeProject())
		if err != nil {
			log.Fatalf("Failed to create project: %v", err)
		}
		fmt.Printf("✓ %s (%s)\n", project.Name, project.ID)
	}

	fmt.Printf("\nSeeded %d demo projects into %s\n", count, config.DBPath)
}

func fakeProject() demo.ProjectForm {
	kind := demo.ProjectProfessional
	if gofakeit.Bool() {
		kind = demo.ProjectAcademic
	}

	techs := append([]string(nil), techPool...)
	gofakeit.ShuffleStrings(techs)

	slug := gofakeit.Username()
	return demo.ProjectForm{
		Name:        gofakeit.AppName(),
		Description: gofakeit.Sentence(12),
		Type:        kind,
		Techs:       techs[:3],
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/640/360", slug),
		RepoURL:     fmt.Sprintf("https://github.com/%s/%s", slug, gofakeit.Word()),
		DeployURL:   fmt.Sprintf("https://%s.vercel.app", slug),
	}
}
