// Command main imports a YAML question bank into the database.
//
// The bank file looks like:
//
//	categories:
//	  - name: geography
//	    questions:
//	      - question: What is the capital of France?
//	        options: [Paris, Lyon, Marseille, Nice]
//	        answer: Paris
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"quizmate/internal/config"
	"quizmate/internal/database"
	"quizmate/internal/models"
	"quizmate/internal/repository"

	"gopkg.in/yaml.v3"
)

type bankFile struct {
	Categories []struct {
		Name      string `yaml:"name"`
		Questions []struct {
			Question string   `yaml:"question"`
			Options  []string `yaml:"options"`
			Answer   string   `yaml:"answer"`
		} `yaml:"questions"`
	} `yaml:"categories"`
}

func main() {
	path := flag.String("file", "questions.yml", "Path to the YAML question bank")
	dryRun := flag.Bool("dry-run", false, "Validate the bank without writing to the database")
	flag.Parse()

	raw, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *path, err)
	}

	var bank bankFile
	if err := yaml.Unmarshal(raw, &bank); err != nil {
		log.Fatalf("Failed to parse %s: %v", *path, err)
	}

	questions, err := buildQuestions(bank)
	if err != nil {
		log.Fatalf("Invalid question bank: %v", err)
	}
	log.Printf("Parsed %d questions across %d categories", len(questions), len(bank.Categories))

	if *dryRun {
		log.Println("Dry run, nothing written")
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewQuestionRepository(db)
	if err := repo.CreateBatch(context.Background(), questions); err != nil {
		log.Fatalf("Failed to insert questions: %v", err)
	}
	log.Printf("Imported %d questions", len(questions))
}

func buildQuestions(bank bankFile) ([]models.Question, error) {
	var questions []models.Question
	for _, category := range bank.Categories {
		name := strings.TrimSpace(strings.ToLower(category.Name))
		if name == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		for i, q := range category.Questions {
			if strings.TrimSpace(q.Question) == "" {
				return nil, fmt.Errorf("category %q: question %d has no text", name, i+1)
			}
			if len(q.Options) < 2 {
				return nil, fmt.Errorf("category %q: question %d needs at least two options", name, i+1)
			}
			valid := false
			for _, opt := range q.Options {
				if opt == q.Answer {
					valid = true
					break
				}
			}
			if !valid {
				return nil, fmt.Errorf("category %q: question %d: answer %q is not among the options", name, i+1, q.Answer)
			}

			question := models.Question{Category: name, Text: q.Question, Answer: q.Answer}
			if err := question.SetOptions(q.Options); err != nil {
				return nil, err
			}
			questions = append(questions, question)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("bank contains no questions")
	}
	return questions, nil
}
