package postgres

import (
	"fmt"

	"shopfloor/internal/adapters/out/postgres/operatorrepo"
	"shopfloor/internal/adapters/out/postgres/partrepo"
	"shopfloor/internal/adapters/out/postgres/pgerr"
	"shopfloor/internal/adapters/out/postgres/projectrepo"
	"shopfloor/internal/adapters/out/postgres/trackingrepo"

	"gorm.io/gorm"
)

// constraintStatements add what AutoMigrate cannot express. Every statement is
// idempotent so Migrate can run on each start.
var constraintStatements = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + pgerr.ActivePartIndex + `
		ON task_trackings (part_id) WHERE is_active`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + pgerr.ActiveOperatorIndex + `
		ON task_trackings (operator_id) WHERE is_active`,
	addConstraint("parts", "fk_parts_project",
		"FOREIGN KEY (project_id) REFERENCES projects (id) ON DELETE CASCADE"),
	addConstraint("task_trackings", "fk_task_trackings_part",
		"FOREIGN KEY (part_id) REFERENCES parts (id) ON DELETE CASCADE"),
	addConstraint("task_trackings", "fk_task_trackings_operator",
		"FOREIGN KEY (operator_id) REFERENCES operators (id)"),
	addConstraint("task_trackings", "ck_task_trackings_closing",
		`CHECK (
			(is_active AND end_time IS NULL AND duration_minutes IS NULL AND state_at_completion IS NULL)
			OR (NOT is_active AND end_time IS NOT NULL AND duration_minutes IS NOT NULL AND state_at_completion IS NOT NULL)
		)`),
	addConstraint("projects", "ck_projects_client_alias",
		"CHECK (char_length(client_alias) BETWEEN 3 AND 50)"),
}

func addConstraint(table, name, definition string) string {
	return fmt.Sprintf(`DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%s') THEN
		ALTER TABLE %s ADD CONSTRAINT %s %s;
	END IF;
END $$;`, name, table, name, definition)
}

// Migrate creates or updates the schema: tables through GORM AutoMigrate, then
// the foreign keys, checks and partial unique indexes.
//
// Example:
//
//	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    return err
//	}
//	if err := postgres.Migrate(db); err != nil {
//	    return err
//	}
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&projectrepo.ProjectDTO{},
		&operatorrepo.OperatorDTO{},
		&partrepo.PartDTO{},
		&trackingrepo.TaskTrackingDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, statement := range constraintStatements {
		if err := db.Exec(statement).Error; err != nil {
			return fmt.Errorf("apply constraint: %w", err)
		}
	}

	return nil
}
