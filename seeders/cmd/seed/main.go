package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	applogger "gearguard/pkg/logger"
	"gearguard/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runUsers := flag.Bool("users", false, "Создать демо-пользователей (admin, supervisor, technicians)")
	runTeams := flag.Bool("teams", false, "Создать демо-команды и их состав")
	runEquipment := flag.Bool("equipment", false, "Создать демо-оборудование")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -users -teams -equipment)")
	importFile := flag.String("import", "", "Импортировать оборудование из xlsx-ведомости")

	flag.Parse()

	if !*runUsers && !*runTeams && !*runEquipment && !*runAll && *importFile == "" {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -all")
		log.Println("  go run ./seeders/cmd/seed -import inventory.xlsx")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("❌ Миграции не применены: %v", err)
	}

	// Команды ссылаются на пользователей, оборудование на команды.
	steps := []struct {
		enabled bool
		name    string
		run     func(context.Context) error
	}{
		{*runAll || *runUsers, "users", func(ctx context.Context) error { return seeders.SeedUsers(ctx, dbPool) }},
		{*runAll || *runTeams, "teams", func(ctx context.Context) error { return seeders.SeedTeams(ctx, dbPool) }},
		{*runAll || *runEquipment, "equipment", func(ctx context.Context) error { return seeders.SeedEquipment(ctx, dbPool) }},
	}
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		if err := step.run(ctx); err != nil {
			log.Fatalf("❌ Сидер %s завершился с ошибкой: %v", step.name, err)
		}
		log.Println("======================================================")
	}

	if *importFile != "" {
		f, err := os.Open(*importFile)
		if err != nil {
			log.Fatalf("❌ Не удалось открыть %s: %v", *importFile, err)
		}
		defer f.Close()

		logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
		importer := services.NewEquipmentImportService(repositories.NewEquipmentRepository(dbPool, logger), logger)
		res, err := importer.ImportXLSX(ctx, f)
		if err != nil {
			log.Fatalf("❌ Импорт прерван: %v", err)
		}
		log.Printf("📥 Импорт завершён: создано %d, пропущено %d", res.Created, res.Skipped)
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
