package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Demo data inserted by SeedDemo.
const (
	DemoUserName  = "Test User"
	DemoUserEmail = "test@example.com"

	DemoResumeText = "Experienced Python developer with 5 years of experience in web development using " +
		"Django and Flask. Proficient in SQL, JavaScript, and React. Experience with Docker and AWS. " +
		"Strong background in machine learning with scikit-learn and pandas. Familiar with Git, Linux, " +
		"and REST API development."
)

// DemoJobs are the job postings inserted by SeedDemo.
var DemoJobs = []struct{ Title, Description string }{
	{
		Title: "Senior Python Developer",
		Description: "Looking for a senior Python developer with experience in Django, Flask, SQL, and cloud " +
			"technologies like AWS. Knowledge of Docker and CI/CD is a plus. Must have experience with Git " +
			"and Linux environments.",
	},
	{
		Title: "Full Stack Developer",
		Description: "Seeking a full-stack developer proficient in React, Node.js, Python, and PostgreSQL. " +
			"Experience with REST APIs and microservices architecture preferred. Knowledge of JavaScript, HTML, " +
			"CSS, and modern web frameworks required.",
	},
	{
		Title: "Data Scientist",
		Description: "Looking for a data scientist with expertise in Python, machine learning, pandas, numpy, " +
			"and scikit-learn. Experience with TensorFlow or PyTorch is required. Knowledge of SQL and data " +
			"visualization tools preferred.",
	},
	{
		Title: "DevOps Engineer",
		Description: "Seeking a DevOps engineer with experience in AWS, Docker, Kubernetes, and CI/CD pipelines. " +
			"Knowledge of Terraform, Ansible, and monitoring tools. Linux administration skills required.",
	},
	{
		Title: "Frontend Developer",
		Description: "Looking for a frontend developer skilled in React, JavaScript, TypeScript, HTML, CSS, and " +
			"modern build tools like Webpack. Experience with testing frameworks like Jest preferred.",
	},
}

// SeedResult reports what SeedDemo created
type SeedResult struct {
	UserID   uuid.UUID   `json:"user_id"`
	ResumeID uuid.UUID   `json:"resume_id"`
	JobIDs   []uuid.UUID `json:"job_ids"`
	Created  bool        `json:"created"` // false when the demo user already existed
}

// SeedDemo inserts the demo user, résumé and jobs in one transaction.
// If the demo user already exists nothing is written.
func (db *DB) SeedDemo(ctx context.Context, passwordHash string) (*SeedResult, error) {
	existing, err := db.GetUserByEmail(ctx, DemoUserEmail)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &SeedResult{UserID: existing.ID}, nil
	}

	res := &SeedResult{Created: true}
	err = pgx.BeginFunc(ctx, db.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx,
			`INSERT INTO users (name, email, password_hash, password_set) VALUES ($1, $2, $3, $4) RETURNING id`,
			DemoUserName, DemoUserEmail, passwordHash, passwordHash != "",
		).Scan(&res.UserID); err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}

		if err := tx.QueryRow(ctx,
			`INSERT INTO resumes (user_id, resume_text) VALUES ($1, $2) RETURNING id`,
			res.UserID, DemoResumeText,
		).Scan(&res.ResumeID); err != nil {
			return fmt.Errorf("failed to create demo resume: %w", err)
		}

		for _, j := range DemoJobs {
			var id uuid.UUID
			if err := tx.QueryRow(ctx,
				`INSERT INTO jobs (title, description) VALUES ($1, $2) RETURNING id`,
				j.Title, j.Description,
			).Scan(&id); err != nil {
				return fmt.Errorf("failed to create demo job %q: %w", j.Title, err)
			}
			res.JobIDs = append(res.JobIDs, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
