package populate

import (
	"fmt"

	"github.com/coolbeans/roadsign/pkg/ontology"
)

// Emit writes each record into kb as a new RoadSign individual. Shape, colour
// and symbol values become named individuals of their class; the remaining
// fields are data properties. Unset optional fields are left out.
func Emit(kb *ontology.KnowledgeBase, records []Record) error {
	for _, record := range records {
		instance := kb.NewInstance(ontology.ClassRoadSign)

		links := []struct {
			property string
			class    string
			name     string
		}{
			{ontology.PropertyShape, ontology.ClassShape, record.Shape},
			{ontology.PropertyBorderColor, ontology.ClassColor, record.BorderColour},
			{ontology.PropertyGroundColor, ontology.ClassColor, record.GroundColour},
			{ontology.PropertySymbol, ontology.ClassSymbol, record.Symbol},
			{ontology.PropertySymbolColor, ontology.ClassColor, record.SymbolColour},
		}
		for _, link := range links {
			if link.name == "" {
				continue
			}
			individual, err := kb.Individual(link.class, link.name)
			if err != nil {
				return fmt.Errorf("sign %s: %w", record.Subject, err)
			}
			instance.SetObjects(link.property, individual)
		}

		data := []struct {
			property string
			value    string
		}{
			{ontology.PropertySymbolValue, record.SymbolValue},
			{ontology.PropertyImage, record.Image},
			{ontology.PropertyImageCreator, record.ImageCreator},
			{ontology.PropertyImageDate, record.ImageDate},
		}
		for _, field := range data {
			if field.value != "" {
				instance.SetData(field.property, field.value)
			}
		}
	}
	return nil
}
