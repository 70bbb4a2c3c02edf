package main

import (
	"fmt"
	"log"
	"os"

	"academy/catalog"
	"academy/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Imports a content catalog file into the database. Modules and lessons
// are matched by title: existing rows are updated in place, new ones
// created. Nothing is deleted; retire content by marking it draft in
// the catalog.
//
// Usage: catalog-importer [catalog.json]
// Target: DATABASE_URL (postgres) or ./data/academy.db (sqlite).
func main() {
	path := "./catalog.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := catalog.ParseFile(path)
	if err != nil {
		log.Fatal("Failed to read catalog:", err)
	}

	if problems := file.Validate(); len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(p)
		}
		log.Fatalf("Catalog has %d problems, not importing", len(problems))
	}

	db, err := openDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.Module{}, &models.Lesson{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	createdModules, createdLessons := 0, 0
	for _, cm := range file.Modules {
		var module models.Module
		err := db.Where("title = ?", cm.Title).First(&module).Error
		if err == gorm.ErrRecordNotFound {
			module = models.Module{Title: cm.Title}
			createdModules++
		} else if err != nil {
			log.Fatal("Failed to look up module:", err)
		}

		module.OrderIndex = cm.OrderIndex
		module.Status = cm.Status
		if err := db.Save(&module).Error; err != nil {
			log.Fatal("Failed to save module:", err)
		}

		for _, cl := range cm.Lessons {
			var lesson models.Lesson
			err := db.Where("module_id = ? AND title = ?", module.ID, cl.Title).First(&lesson).Error
			if err == gorm.ErrRecordNotFound {
				lesson = models.Lesson{ModuleID: module.ID, Title: cl.Title}
				createdLessons++
			} else if err != nil {
				log.Fatal("Failed to look up lesson:", err)
			}

			lesson.OrderIndex = cl.OrderIndex
			lesson.Status = cl.Status
			lesson.XPReward = cl.XPReward
			if err := db.Save(&lesson).Error; err != nil {
				log.Fatal("Failed to save lesson:", err)
			}
		}
	}

	fmt.Printf("Imported %d modules (%d new), %d new lessons\n",
		len(file.Modules), createdModules, createdLessons)
}

func openDB() (*gorm.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open("./data/academy.db"), &gorm.Config{})
}
