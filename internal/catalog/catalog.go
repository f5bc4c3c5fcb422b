// Package catalog holds the static OSDU domain and entity taxonomy the
// viewer exposes for browsing. Each entity maps a display name to the
// kind string used for search queries.
package catalog

import (
	"sort"
	"strings"
)

// Entity is one browsable record type within a domain. KindAlternatives
// lists additional kinds some deployments register the entity under.
type Entity struct {
	Kind             string   `json:"kind"`
	KindAlternatives []string `json:"kind_alternatives,omitempty"`
	Description      string   `json:"description"`
	Fields           []string `json:"fields"`
}

// Domain groups related entities.
type Domain struct {
	Description string            `json:"description"`
	Entities    map[string]Entity `json:"entities"`
}

// EntityMatch is one hit from SearchEntities.
type EntityMatch struct {
	Domain      string `json:"domain"`
	Entity      string `json:"entity"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

var domains = map[string]Domain{
	"General Data": {
		Description: "Core geological and geographical master data",
		Entities: map[string]Entity{
			"Basin": {
				Kind:             "osdu:wks:master-data--Basin:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Basin:*"},
				Description:      "Sedimentary basin",
				Fields:           []string{"BasinName", "Country", "Province"},
			},
			"Block": {
				Kind:             "osdu:wks:master-data--Block:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Block:*"},
				Description:      "Exploration block",
				Fields:           []string{"BlockName", "Country", "Operator"},
			},
			"Field": {
				Kind:             "osdu:wks:master-data--Field:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Field:*"},
				Description:      "Oil and gas field",
				Fields:           []string{"FieldName", "Country", "DiscoveryDate"},
			},
			"Reservoir": {
				Kind:             "osdu:wks:master-data--Reservoir:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Reservoir:*"},
				Description:      "Reservoir formation",
				Fields:           []string{"ReservoirName", "FieldID", "Formation"},
			},
			"Well": {
				Kind:             "osdu:wks:master-data--Well:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Well:*"},
				Description:      "Well",
				Fields:           []string{"WellName", "WellType", "SpudDate"},
			},
			"Wellbore": {
				Kind:             "osdu:wks:master-data--Wellbore:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Wellbore:*"},
				Description:      "Wellbore",
				Fields:           []string{"WellboreName", "WellID", "FinalTotalDepth"},
			},
			"GeopoliticalEntity": {
				Kind:             "osdu:wks:master-data--GeopoliticalEntity:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--GeopoliticalEntity:*"},
				Description:      "Geopolitical entity",
				Fields:           []string{"Name", "GeopoliticalEntityType"},
			},
			"Organisation": {
				Kind:             "osdu:wks:master-data--Organisation:*",
				KindAlternatives: []string{"osdu:ddms-wellbore:master-data--Organisation:*"},
				Description:      "Organisation or company",
				Fields:           []string{"OrganisationName", "OrganisationType"},
			},
		},
	},
	"Wellbore Domain": {
		Description: "Wellbore measurement and completion data",
		Entities: map[string]Entity{
			"WellLog": {
				Kind:        "osdu:wks:well-log--WellLog:*",
				Description: "Well log",
				Fields:      []string{"LogName", "WellboreID", "LogType"},
			},
			"WellboreTrajectory": {
				Kind:        "osdu:wks:wellbore--WellboreTrajectory:*",
				Description: "Wellbore trajectory",
				Fields:      []string{"WellboreID", "TrajectoryType"},
			},
			"WellboreMarkerSet": {
				Kind:        "osdu:wks:wellbore--WellboreMarkerSet:*",
				Description: "Wellbore marker set",
				Fields:      []string{"WellboreID", "MarkerSetName"},
			},
			"WellboreCompletion": {
				Kind:        "osdu:wks:wellbore--WellboreCompletion:*",
				Description: "Wellbore completion",
				Fields:      []string{"WellboreID", "CompletionType"},
			},
			"WellLogChannel": {
				Kind:        "osdu:wks:well-log--WellLogChannel:*",
				Description: "Well log channel",
				Fields:      []string{"ChannelName", "WellLogID", "Unit"},
			},
			"LoggingTool": {
				Kind:        "osdu:wks:well-log--LoggingTool:*",
				Description: "Logging tool",
				Fields:      []string{"ToolName", "ToolType", "Vendor"},
			},
			"CoredInterval": {
				Kind:        "osdu:wks:wellbore--CoredInterval:*",
				Description: "Cored interval",
				Fields:      []string{"WellboreID", "TopDepth", "BottomDepth"},
			},
		},
	},
	"Work/Project Domain": {
		Description: "Project and work product data",
		Entities: map[string]Entity{
			"Project": {
				Kind:        "osdu:wks:project--Project:*",
				Description: "Project",
				Fields:      []string{"ProjectName", "ProjectType", "StartDate"},
			},
			"WorkProduct": {
				Kind:        "osdu:wks:work-product--WorkProduct:*",
				Description: "Work product",
				Fields:      []string{"WorkProductName", "ProjectID", "WorkProductType"},
			},
			"WorkProductComponent": {
				Kind:        "osdu:wks:work-product-component--WorkProductComponent:*",
				Description: "Work product component",
				Fields:      []string{"ComponentName", "WorkProductID"},
			},
			"Activity": {
				Kind:        "osdu:wks:activity--Activity:*",
				Description: "Activity",
				Fields:      []string{"ActivityName", "ActivityType", "StartDate"},
			},
			"ActivityTemplate": {
				Kind:        "osdu:wks:activity--ActivityTemplate:*",
				Description: "Activity template",
				Fields:      []string{"TemplateName", "ActivityType"},
			},
		},
	},
	"Seismic Domain": {
		Description: "Seismic survey and acquisition data",
		Entities: map[string]Entity{
			"SeismicSurvey": {
				Kind:        "osdu:wks:seismic--SeismicSurvey:*",
				Description: "Seismic survey",
				Fields:      []string{"SurveyName", "SurveyType", "AcquisitionDate"},
			},
			"Seismic2D": {
				Kind:        "osdu:wks:seismic--Seismic2D:*",
				Description: "2D seismic",
				Fields:      []string{"SurveyName", "LineCount"},
			},
			"Seismic3D": {
				Kind:        "osdu:wks:seismic--Seismic3D:*",
				Description: "3D seismic",
				Fields:      []string{"SurveyName", "BinSize", "Coverage"},
			},
			"SeismicLine": {
				Kind:        "osdu:wks:seismic--SeismicLine:*",
				Description: "Seismic line",
				Fields:      []string{"LineName", "SurveyID", "Length"},
			},
			"SeismicAcquisitionSurvey": {
				Kind:        "osdu:wks:seismic--SeismicAcquisitionSurvey:*",
				Description: "Seismic acquisition survey",
				Fields:      []string{"SurveyName", "Contractor", "Equipment"},
			},
		},
	},
	"Files Domain": {
		Description: "File and dataset data",
		Entities: map[string]Entity{
			"File": {
				Kind:        "osdu:wks:dataset--File:*",
				Description: "Data file",
				Fields:      []string{"FileName", "FileSize", "FileType"},
			},
			"Dataset": {
				Kind:        "osdu:wks:dataset--Dataset:*",
				Description: "Dataset",
				Fields:      []string{"DatasetName", "DatasetType", "CreationDate"},
			},
			"FileCollection": {
				Kind:        "osdu:wks:dataset--FileCollection:*",
				Description: "File collection",
				Fields:      []string{"CollectionName", "FileCount"},
			},
		},
	},
	"Reference Domain": {
		Description: "Reference and standards data",
		Entities: map[string]Entity{
			"ReferenceData": {
				Kind:        "osdu:wks:reference-data--ReferenceData:*",
				Description: "Reference data",
				Fields:      []string{"Name", "Type", "Version"},
			},
			"Unit": {
				Kind:        "osdu:wks:unit--Unit:*",
				Description: "Unit of measure",
				Fields:      []string{"UnitName", "UnitType", "Symbol"},
			},
			"CRS": {
				Kind:        "osdu:wks:crs--CRS:*",
				Description: "Coordinate reference system",
				Fields:      []string{"CRSName", "CRSType", "Authority"},
			},
		},
	},
}

// DomainNames returns all domain names in sorted order.
func DomainNames() []string {
	names := make([]string, 0, len(domains))
	for name := range domains {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Domains returns the full taxonomy.
func Domains() map[string]Domain {
	return domains
}

// EntityInfo is one entry in the flattened cross-domain entity list.
type EntityInfo struct {
	Domain string `json:"domain"`
	Name   string `json:"entity"`
	Entity
}

// AllEntities flattens the taxonomy into a single list, sorted by
// domain then entity for stable output.
func AllEntities() []EntityInfo {
	entities := make([]EntityInfo, 0, TotalEntities())
	for domainName, domain := range domains {
		for entityName, entity := range domain.Entities {
			entities = append(entities, EntityInfo{
				Domain: domainName,
				Name:   entityName,
				Entity: entity,
			})
		}
	}

	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Domain != entities[j].Domain {
			return entities[i].Domain < entities[j].Domain
		}
		return entities[i].Name < entities[j].Name
	})
	return entities
}

// GetDomain looks up a domain by name.
func GetDomain(name string) (Domain, bool) {
	d, ok := domains[name]
	return d, ok
}

// GetEntity looks up an entity within a domain.
func GetEntity(domainName, entityName string) (Entity, bool) {
	d, ok := domains[domainName]
	if !ok {
		return Entity{}, false
	}
	e, ok := d.Entities[entityName]
	return e, ok
}

// SearchEntities matches entities by name or description, case
// insensitively, sorted by domain then entity for stable output.
func SearchEntities(term string) []EntityMatch {
	needle := strings.ToLower(term)

	var matches []EntityMatch
	for domainName, domain := range domains {
		for entityName, entity := range domain.Entities {
			if strings.Contains(strings.ToLower(entityName), needle) ||
				strings.Contains(strings.ToLower(entity.Description), needle) {
				matches = append(matches, EntityMatch{
					Domain:      domainName,
					Entity:      entityName,
					Kind:        entity.Kind,
					Description: entity.Description,
				})
			}
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Domain != matches[j].Domain {
			return matches[i].Domain < matches[j].Domain
		}
		return matches[i].Entity < matches[j].Entity
	})
	return matches
}

// TotalEntities counts entities across all domains.
func TotalEntities() int {
	total := 0
	for _, d := range domains {
		total += len(d.Entities)
	}
	return total
}

// HasField reports whether the entity declares the given data field.
func (e Entity) HasField(name string) bool {
	for _, f := range e.Fields {
		if f == name {
			return true
		}
	}
	return false
}
