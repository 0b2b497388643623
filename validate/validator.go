package validate

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/c360studio/docgraph/ontology"
	"github.com/c360studio/docgraph/rdf"
	"github.com/c360studio/docgraph/vocabulary/docgraph"
)

// Validator checks instance graphs against a schema model. The zero value
// validates against the Docgraph ontology namespace.
type Validator struct {
	// OntologyNamespace scopes the class-membership check: only declared
	// types under this namespace are compared against the schema.
	OntologyNamespace string
}

// New creates a Validator scoped to the Docgraph ontology namespace.
func New() *Validator {
	return &Validator{OntologyNamespace: docgraph.NamespaceOntology}
}

// Validate runs all checks over the triples against the model. It is a pure
// function of its inputs: findings are always returned, never raised, and no
// state is shared between runs.
func (v *Validator) Validate(triples []rdf.Triple, model *ontology.Model) *Result {
	if model == nil {
		model = ontology.EmptyModel()
	}

	subjects, instances := groupInstances(triples)

	result := &Result{
		TriplesValidated:   len(triples),
		InstancesValidated: len(subjects),
	}

	v.checkClassMembership(result, subjects, instances, model)
	v.checkPropertyDomains(result, subjects, instances, model)
	v.checkCardinality(result, subjects, instances, model)

	return result
}

// groupInstances folds triples into per-subject instances in one pass.
// A type-declaration triple appends to the subject's type list; every other
// triple appends to the property-value list under its predicate. Subject
// first-seen order is preserved so findings are deterministic.
func groupInstances(triples []rdf.Triple) ([]string, map[string]*Instance) {
	var subjects []string
	instances := make(map[string]*Instance)

	get := func(subject string) *Instance {
		inst, ok := instances[subject]
		if !ok {
			inst = &Instance{Properties: make(map[string][]string)}
			instances[subject] = inst
			subjects = append(subjects, subject)
		}
		return inst
	}

	for _, t := range triples {
		inst := get(t.Subject)
		if t.Predicate == docgraph.RDFType {
			inst.Types = append(inst.Types, t.Object.Value)
			continue
		}
		inst.Properties[t.Predicate] = append(inst.Properties[t.Predicate], t.Object.Value)
	}

	return subjects, instances
}

// checkClassMembership warns on declared types under the ontology namespace
// that a non-empty schema does not define. With an empty class set (degraded
// fetch) the check cannot fire.
func (v *Validator) checkClassMembership(result *Result, subjects []string,
	instances map[string]*Instance, model *ontology.Model) {
	result.ChecksPerformed = append(result.ChecksPerformed, CheckClassMembership)

	if len(model.Classes) == 0 {
		return
	}

	for _, subject := range subjects {
		for _, classIRI := range instances[subject].Types {
			if !strings.HasPrefix(classIRI, v.OntologyNamespace) {
				continue
			}
			if model.HasClass(classIRI) {
				continue
			}
			result.Warnings = append(result.Warnings, Issue{
				Kind:     KindUndefinedClass,
				Instance: subject,
				Class:    classIRI,
				Message: fmt.Sprintf("Instance %s has type %s which is not defined in ontology",
					subject, classIRI),
			})
		}
	}
}

// checkPropertyDomains warns when an instance carries a property whose
// declared domain class is absent from the instance's types. Range is
// fetched by the schema model but deliberately not enforced here.
func (v *Validator) checkPropertyDomains(result *Result, subjects []string,
	instances map[string]*Instance, model *ontology.Model) {
	result.ChecksPerformed = append(result.ChecksPerformed, CheckPropertyDomains)

	for _, subject := range subjects {
		inst := instances[subject]
		for _, propIRI := range propertyOrder(inst) {
			prop, ok := model.PropertyByIRI(propIRI)
			if !ok || prop.Domain == "" {
				continue
			}
			if slices.Contains(inst.Types, prop.Domain) {
				continue
			}
			result.Warnings = append(result.Warnings, Issue{
				Kind:           KindDomainMismatch,
				Instance:       subject,
				Property:       propIRI,
				ExpectedDomain: prop.Domain,
				ActualTypes:    inst.Types,
				Message: fmt.Sprintf("Property %s expects domain %s",
					propIRI, prop.Domain),
			})
		}
	}
}

// checkCardinality enforces the cardinality restriction kinds. The switch is
// exhaustive over RestrictionKind: maxCardinality, allValuesFrom, and
// someValuesFrom are recognized but not enforced.
func (v *Validator) checkCardinality(result *Result, subjects []string,
	instances map[string]*Instance, model *ontology.Model) {
	result.ChecksPerformed = append(result.ChecksPerformed, CheckCardinality)

	byClass := model.RestrictionsByClass()

	for _, subject := range subjects {
		inst := instances[subject]
		for _, classIRI := range inst.Types {
			for _, restriction := range byClass[classIRI] {
				count := len(inst.Properties[restriction.Property])

				switch restriction.Kind {
				case ontology.KindCardinality:
					if restriction.Value != "1" {
						continue
					}
					if count != 1 {
						result.Violations = append(result.Violations, Issue{
							Kind:     KindCardinalityViolation,
							Instance: subject,
							Property: restriction.Property,
							Expected: 1,
							Actual:   count,
							Message: fmt.Sprintf("Property %s must have exactly 1 value, has %d",
								restriction.Property, count),
						})
					}

				case ontology.KindMinCardinality:
					minCount, err := strconv.Atoi(restriction.Value)
					if err != nil {
						continue
					}
					if count < minCount {
						result.Violations = append(result.Violations, Issue{
							Kind:        KindMinCardinalityViolation,
							Instance:    subject,
							Property:    restriction.Property,
							MinExpected: minCount,
							Actual:      count,
							Message: fmt.Sprintf("Property %s must have at least %d values, has %d",
								restriction.Property, minCount, count),
						})
					}

				case ontology.KindMaxCardinality:
					// Recognized but not enforced.

				case ontology.KindAllValuesFrom:
					// Recognized but not enforced.

				case ontology.KindSomeValuesFrom:
					// Recognized but not enforced.
				}
			}
		}
	}
}

// propertyOrder returns an instance's property IRIs in a stable order.
func propertyOrder(inst *Instance) []string {
	props := make([]string, 0, len(inst.Properties))
	for iri := range inst.Properties {
		props = append(props, iri)
	}
	slices.Sort(props)
	return props
}
