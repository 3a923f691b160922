package recommend

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sabq-ai/app-template-recommender/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Usa o nome JSON nos caminhos de erro (manifest[0].best_for[1])
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("template_kind", func(fl validator.FieldLevel) bool {
		kind, ok := fl.Field().Interface().(models.TemplateKind)
		return ok && kind.IsValid()
	})
	_ = v.RegisterValidation("content_tag", func(fl validator.FieldLevel) bool {
		tag, ok := fl.Field().Interface().(models.ContentTag)
		return ok && tag.IsValid()
	})

	return v
}

// ValidateManifest valida todos os descriptors antes do scoring.
// Retorna o primeiro *models.ValidationError encontrado.
func ValidateManifest(manifest []models.TemplateDescriptor) error {
	seen := make(map[string]int, len(manifest))
	for i, tpl := range manifest {
		if err := ValidateTemplate(tpl); err != nil {
			var ve *models.ValidationError
			if errors.As(err, &ve) {
				return &models.ValidationError{
					Field:  fmt.Sprintf("manifest[%d].%s", i, ve.Field),
					Reason: ve.Reason,
				}
			}
			return err
		}
		if first, dup := seen[tpl.ID]; dup {
			return &models.ValidationError{
				Field:  fmt.Sprintf("manifest[%d].id", i),
				Reason: fmt.Sprintf("duplicado de manifest[%d]", first),
			}
		}
		seen[tpl.ID] = i
	}
	return nil
}

// ValidateTemplate valida um único descriptor
func ValidateTemplate(tpl models.TemplateDescriptor) error {
	err := validate.Struct(tpl)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("erro ao validar template: %w", err)
	}

	fe := fieldErrs[0]
	return &models.ValidationError{
		Field:  fieldPath(fe.Namespace()),
		Reason: reasonFor(fe),
	}
}

// ValidateItems garante que todo item tem identificador
func ValidateItems(items []models.ContentItem) error {
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return &models.ValidationError{
				Field:  fmt.Sprintf("items[%d].id", i),
				Reason: "obrigatório",
			}
		}
	}
	return nil
}

// fieldPath remove o nome do struct raiz do namespace do validator
func fieldPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx >= 0 {
		return namespace[idx+1:]
	}
	return namespace
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "obrigatório"
	case "template_kind":
		return fmt.Sprintf("kind desconhecido: %v", fe.Value())
	case "content_tag":
		return fmt.Sprintf("tag desconhecida: %v", fe.Value())
	case "oneof":
		return fmt.Sprintf("valor %v fora de [%s]", fe.Value(), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("valor %v viola %s=%s", fe.Value(), fe.Tag(), fe.Param())
	}
	return fe.Tag()
}
