package classify

import "github.com/emrgen/doctrack/internal/model"

// base tag vocabulary per category
var categoryTags = map[model.Category][]string{
	model.CategoryAdministrative: {
		"administration", "management", "report", "official",
		"internal_document", "compliance", "archiving",
		"policy", "regulation", "procedure",
	},
	model.CategoryProject: {
		"innovation", "development", "strategy", "planning",
		"R&D", "client", "proposal", "specifications",
		"prototype", "improvement", "objectives",
	},
	model.CategoryPersonnel: {
		"HR", "recruitment", "evaluation", "skills",
		"personal_development", "training", "onboarding",
		"career", "motivation", "human_resources",
	},
	model.CategoryOther: {
		"document", "information", "data", "archive",
		"miscellaneous", "undefined", "classification", "reference",
		"documentation", "support",
	},
}

type keywordTags struct {
	keyword string
	related []string
}

// description triggers, scanned in this order
var descriptionKeywords = []keywordTags{
	{keyword: "financial", related: []string{"finances", "accounting", "budget"}},
	{keyword: "strategy", related: []string{"strategic", "direction", "management"}},
	{keyword: "maintenance", related: []string{"infrastructure", "technical", "system"}},
	{keyword: "client", related: []string{"satisfaction", "customer_relations", "service"}},
	{keyword: "innovation", related: []string{"R&D", "technology", "research"}},
	{keyword: "evaluation", related: []string{"performance", "skills", "development"}},
}

// extra tags added for a keyword within a given category
var categoryKeywords = map[model.Category][]keywordTags{
	model.CategoryAdministrative: {
		{keyword: "finances", related: []string{"accounting", "budget"}},
		{keyword: "maintenance", related: []string{"technical", "infrastructure"}},
	},
	model.CategoryProject: {
		{keyword: "innovation", related: []string{"R&D", "development"}},
		{keyword: "client", related: []string{"satisfaction", "customer_relations"}},
	},
	model.CategoryPersonnel: {
		{keyword: "recruitment", related: []string{"CV", "skills"}},
		{keyword: "training", related: []string{"development", "onboarding"}},
	},
}

const (
	baseTagCount    = 3
	relatedTagCount = 2

	firstTaggedYear = 2020
	lastTaggedYear  = 2030
)

// weighted status multisets
var statusWeights = map[model.Category][]model.Status{
	model.CategoryAdministrative: {model.StatusActive, model.StatusActive, model.StatusArchived, model.StatusDeleted},
	model.CategoryProject:        {model.StatusActive, model.StatusActive, model.StatusActive, model.StatusArchived, model.StatusDeleted},
	model.CategoryPersonnel:      {model.StatusActive, model.StatusArchived, model.StatusArchived, model.StatusDeleted},
	model.CategoryOther:          {model.StatusActive, model.StatusActive, model.StatusArchived, model.StatusDeleted},
}

var fallbackStatuses = []model.Status{model.StatusActive, model.StatusArchived, model.StatusDeleted}
