package main

// Command: generate_domain.go
//
// Scaffolds a new domain package under domain/<name> with boilerplate for the
// repository, service, DTO, and controller layers, following the same layout
// as the waitlist domain.
//
// Usage:
//   cli generate-domain
//   # Then follow the prompt to enter your domain name.

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const domainDir = "domain/"

func GenerateDomain() {
	fmt.Println("Enter the name of your domain please: ")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()

	domainName := strings.TrimSpace(scanner.Text())

	if domainName == "" {
		fmt.Println("unable to create domain, invalid input")
		return
	}

	domainPath := filepath.Join(domainDir, domainName)

	if _, err := os.Stat(domainPath); !os.IsNotExist(err) {
		fmt.Println("Error: Domain already exists. Ignoring creation.")
		return
	}

	if err := os.MkdirAll(domainPath, os.ModePerm); err != nil {
		fmt.Println("Error creating domain: ", err)
		return
	}

	files := map[string]string{
		"repository.go": repoTemplate(domainName),
		"service.go":    serviceTemplate(domainName),
		"dto.go":        dtoTemplate(domainName),
	}

	for filename, content := range files {
		path := filepath.Join(domainPath, filename)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			fmt.Println("Error creating file:", err)
		}
	}

	title := cases.Title(language.English).String(domainName)
	fmt.Println("Domain", domainName, "created successfully!")
	fmt.Println("  ===> Next steps:")
	fmt.Println("   1) Create the database model in internal/models/ and register it in ModelRegistry")
	fmt.Println("   2) Implement repository, service, and handlers in the generated files")
	fmt.Println("   3) Add a controller and mount it in domain/main.go's SetupCoreDomain function:")
	fmt.Printf("      appConfig.RouterService.MountController(%s.New%sController(appConfig.DB, appConfig.Logger, appConfig.Cache))\n", domainName, title)
}

func repoTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	return fmt.Sprintf(`package %[1]s

import (
	"context"

	"github.com/obiano/waitlist-api/internal/models"
	apperrors "github.com/obiano/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

type %[2]sRepository interface {
	Create(ctx context.Context, entry *models.%[2]s) (*models.%[2]s, error)
	FindByID(ctx context.Context, id string) (*models.%[2]s, error)
}

type gorm%[2]sRepository struct {
	db *gorm.DB
}

func New%[2]sRepository(db *gorm.DB) %[2]sRepository {
	return &gorm%[2]sRepository{db: db}
}

func (r *gorm%[2]sRepository) Create(ctx context.Context, entry *models.%[2]s) (*models.%[2]s, error) {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, apperrors.NewDatabaseError("unable to create %[1]s entry", err)
	}
	return entry, nil
}

func (r *gorm%[2]sRepository) FindByID(ctx context.Context, id string) (*models.%[2]s, error) {
	var entry models.%[2]s
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("%[1]s entry not found", err)
		}
		return nil, apperrors.NewDatabaseError("unable to find %[1]s entry", err)
	}
	return &entry, nil
}
`, domain, title)
}

func serviceTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	return fmt.Sprintf(`package %[1]s

import (
	"context"

	"github.com/obiano/waitlist-api/internal/log"
)

type %[2]sService interface {
	FindByID(ctx context.Context, id string) (*%[2]sResponse, error)
}

type default%[2]sService struct {
	repository %[2]sRepository
	logger     *log.Logger
}

func New%[2]sService(repository %[2]sRepository, logger *log.Logger) %[2]sService {
	return &default%[2]sService{repository: repository, logger: logger}
}

func (s *default%[2]sService) FindByID(ctx context.Context, id string) (*%[2]sResponse, error) {
	entry, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return To%[2]sResponse(entry), nil
}
`, domain, title)
}

func dtoTemplate(domain string) string {
	title := cases.Title(language.English).String(domain)
	return fmt.Sprintf(`package %[1]s

import (
	"github.com/obiano/waitlist-api/internal/models"
)

type %[2]sResponse struct {
	ID string `+"`json:\"id\"`"+`
}

func To%[2]sResponse(entry *models.%[2]s) *%[2]sResponse {
	return &%[2]sResponse{ID: entry.ID}
}
`, domain, title)
}
