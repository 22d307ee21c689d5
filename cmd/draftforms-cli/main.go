package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-draftforms/pkg/doctype"
	"github.com/goliatone/go-draftforms/pkg/editor"
	"github.com/goliatone/go-draftforms/pkg/formmodel"
	"github.com/goliatone/go-draftforms/pkg/keywords"
	"github.com/goliatone/go-draftforms/pkg/preview"
	"github.com/goliatone/go-draftforms/pkg/schemaload"
	"github.com/goliatone/go-draftforms/pkg/store"
	"github.com/goliatone/go-draftforms/pkg/uischema"
	"github.com/goliatone/go-draftforms/pkg/widget"
)

type doctypeConfig struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Sections    []struct {
		DisplayName string   `json:"displayName"`
		Properties  []string `json:"properties"`
	} `json:"sections"`
	SectionAliases map[string]string `json:"sectionAliases"`
}

func main() {
	schemaPath := flag.String("schema", "schema.json", "full document-type schema path or URL")
	configPath := flag.String("doctype", "doctype.json", "document type layout file")
	server := flag.String("server", "http://localhost:4000", "draft store base URL")
	keywordsURL := flag.String("keywords", "", "keyword endpoint base URL (optional)")
	uiSchemaDir := flag.String("uischema", "", "directory of UI schema files (optional)")
	draftID := flag.Int("draft", 0, "draft id to edit (0 creates a new draft)")
	token := flag.String("token", "", "bearer token for the draft store")
	flag.Parse()

	ctx := context.Background()

	docType, err := loadDocumentType(ctx, *schemaPath, *configPath, *uiSchemaDir)
	if err != nil {
		log.Fatalf("load document type: %v", err)
	}

	draftStore, err := store.NewHTTPStore(
		store.WithBaseURL(*server),
		store.WithDraftType(docType.DocumentType()),
		store.WithToken(*token),
	)
	if err != nil {
		log.Fatalf("configure store: %v", err)
	}

	model, err := formmodel.New(docType, nil)
	if err != nil {
		log.Fatalf("build form model: %v", err)
	}

	options := []editor.Option{
		editor.WithNavigator(func(path string) {
			fmt.Printf("-> %s\n", path)
		}),
	}
	if *keywordsURL != "" {
		client, err := keywords.NewClient(keywords.WithBaseURL(*keywordsURL))
		if err != nil {
			log.Fatalf("configure keywords: %v", err)
		}
		options = append(options, editor.WithKeywordService(client))
	}

	ed, err := editor.New(model, draftStore, options...)
	if err != nil {
		log.Fatalf("build editor: %v", err)
	}

	if *draftID > 0 {
		err = ed.Fetch(ctx, *draftID)
	} else {
		err = ed.CreateNew(ctx)
	}
	if err != nil {
		log.Fatalf("%s", ed.Status().Message)
	}

	summary, err := preview.New("")
	if err != nil {
		log.Fatalf("configure preview: %v", err)
	}

	sections := model.FormSections()
	for range sections {
		if err := editSection(ctx, ed); err != nil {
			log.Fatalf("edit %s: %v", model.CurrentSection().DisplayName, err)
		}
		if err := ed.SaveAndContinue(ctx); err != nil {
			log.Fatalf("%s", ed.Status().Message)
		}
		fmt.Println(ed.Status().Message)
	}

	rendered, err := summary.RenderSection(model)
	if err == nil {
		fmt.Println(rendered)
	}

	publish := false
	if err := survey.AskOne(&survey.Confirm{Message: "Publish this draft?"}, &publish); err != nil {
		log.Fatalf("prompt: %v", err)
	}
	if publish {
		if err := ed.SaveAndPublish(ctx); err != nil {
			log.Fatalf("%s", ed.Status().Message)
		}
		fmt.Printf("published as %s\n", ed.Draft().ConceptID)
	}
}

func editSection(ctx context.Context, ed *editor.Editor) error {
	model := ed.Model()
	hints := model.DocumentType().UISchema()
	section := model.CurrentSection()
	slice := model.FormSchema()
	data := model.FormData()

	fmt.Printf("== %s ==\n", section.DisplayName)

	for _, prop := range slice.Properties {
		label := prop.Name
		if title, ok := prop.Schema["title"].(string); ok && title != "" {
			label = title
		}

		cfg := widget.Config{
			ID:          prop.Name,
			Title:       label,
			Section:     section.DisplayName,
			Property:    prop.Name,
			Schema:      prop.Schema,
			Definitions: slice.Definitions,
			Service:     ed.Keywords(),
			Enums:       model.Enums(),
			Status:      ed,
		}
		if hint, ok := hints[prop.Name]; ok {
			cfg.Placeholder = hint.Placeholder
			if hint.Controlled != nil {
				cfg.Vocabulary = hint.Controlled.Name
				cfg.ControlName = hint.Controlled.ControlName
			}
		}

		field, err := widget.New(cfg)
		if err != nil {
			return err
		}
		field.Resolve(ctx)

		answer, err := prompt(field, label, data[prop.Name])
		if err != nil {
			return err
		}
		if answer == nil {
			delete(data, prop.Name)
		} else {
			data[prop.Name] = answer
		}
	}

	return model.SetFormData(data)
}

func prompt(field *widget.ControlledSelect, label string, current any) (any, error) {
	options := field.Options()
	if len(options) > 1 {
		choices := make([]string, 0, len(options))
		for _, option := range options {
			choices = append(choices, option.Label)
		}
		var picked string
		if err := survey.AskOne(&survey.Select{Message: label, Options: choices}, &picked); err != nil {
			return nil, err
		}
		if picked == widget.ClearLabel {
			return nil, nil
		}
		return picked, nil
	}

	defaultValue := ""
	if s, ok := current.(string); ok {
		defaultValue = s
	}
	var answer string
	if err := survey.AskOne(&survey.Input{Message: label, Default: defaultValue}, &answer); err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}
	return answer, nil
}

func loadUISchema(dir string) (*uischema.Store, error) {
	if dir == "" {
		return uischema.LoadFS(nil)
	}
	return uischema.LoadFS(os.DirFS(dir))
}

func loadDocumentType(ctx context.Context, schemaPath, configPath, uiSchemaDir string) (doctype.DocumentType, error) {
	loader := schemaload.New(schemaload.Options{AllowHTTPFallback: true})
	schema, err := loader.Load(ctx, schemaSource(schemaPath))
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg doctypeConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	hints, err := loadUISchema(uiSchemaDir)
	if err != nil {
		return nil, err
	}
	var fields map[string]uischema.FieldConfig
	if doc, ok := hints.Document(cfg.Name); ok {
		fields = doc.Fields
	}

	sections := make([]doctype.FormSection, 0, len(cfg.Sections))
	for _, s := range cfg.Sections {
		sections = append(sections, doctype.FormSection{DisplayName: s.DisplayName, Properties: s.Properties})
	}

	return doctype.NewDefinition(doctype.Config{
		Schema:         schema,
		Sections:       sections,
		UISchema:       fields,
		Name:           cfg.Name,
		DisplayName:    cfg.DisplayName,
		SectionAliases: cfg.SectionAliases,
	})
}

func schemaSource(path string) schemaload.Source {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schemaload.SourceFromURL(path)
	}
	return schemaload.SourceFromFile(path)
}
