package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gearguard/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsers создаёт демо-пользователей. Существующие email не трогаются.
func SeedUsers(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Пользователи...")
	for _, u := range demoUsers {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		tag, err := db.Exec(ctx,
			`INSERT INTO users (name, email, password, role) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
			u.Name, u.Email, hashed, u.Role)
		if err != nil {
			return fmt.Errorf("не удалось создать пользователя %s: %w", u.Email, err)
		}
		if tag.RowsAffected() == 0 {
			log.Printf("    - %s уже существует. Пропускаем.", u.Email)
		}
	}
	return nil
}

// SeedTeams создаёт команды и состав. Требует SeedUsers.
func SeedTeams(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Команды...")
	for _, t := range demoTeams {
		teamID, err := findID(ctx, db, `SELECT id FROM maintenance_teams WHERE name = $1`, t.Name)
		if err != nil {
			return err
		}
		if teamID == 0 {
			leadID, err := findID(ctx, db, `SELECT id FROM users WHERE email = $1`, t.LeadEmail)
			if err != nil {
				return err
			}
			var lead *uint64
			if leadID != 0 {
				lead = &leadID
			}
			err = db.QueryRow(ctx,
				`INSERT INTO maintenance_teams (name, description, team_lead_id, specialization) VALUES ($1, $2, $3, $4) RETURNING id`,
				t.Name, t.Description, lead, t.Specialization).Scan(&teamID)
			if err != nil {
				return fmt.Errorf("не удалось создать команду %s: %w", t.Name, err)
			}
		}

		for _, email := range t.Members {
			_, err := db.Exec(ctx,
				`INSERT INTO team_members (team_id, user_id)
				 SELECT $1, id FROM users WHERE email = $2
				 ON CONFLICT (team_id, user_id) DO NOTHING`, teamID, email)
			if err != nil {
				return fmt.Errorf("не удалось добавить %s в %s: %w", email, t.Name, err)
			}
		}
	}
	return nil
}

// SeedEquipment создаёт демо-оборудование и привязывает его к командам.
func SeedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Оборудование...")
	for _, e := range demoEquipment {
		teamID, err := findID(ctx, db, `SELECT id FROM maintenance_teams WHERE name = $1`, e.TeamName)
		if err != nil {
			return err
		}
		var team *uint64
		if teamID != 0 {
			team = &teamID
		}
		_, err = db.Exec(ctx,
			`INSERT INTO equipment (name, serial_number, category, location, department, assigned_team_id)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (serial_number) DO NOTHING`,
			e.Name, e.SerialNumber, e.Category, e.Location, e.Department, team)
		if err != nil {
			return fmt.Errorf("не удалось создать оборудование %s: %w", e.SerialNumber, err)
		}
	}
	return nil
}

// findID возвращает 0, если строки нет.
func findID(ctx context.Context, db *pgxpool.Pool, query string, arg interface{}) (uint64, error) {
	var id uint64
	err := db.QueryRow(ctx, query, arg).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}
