package schema

// JunctionTable describes a content ↔ taxonomy join table. All junctions
// share the same two-column shape so the relation synchronizer can treat
// them generically.
type JunctionTable struct {
	Table      string
	ContentID  string
	TaxonomyID string
}

// AssessmentDomain is the schema definition for catalog.assessmentdomain
var AssessmentDomain = JunctionTable{
	Table:      "catalog.assessmentdomain",
	ContentID:  "assessmentid",
	TaxonomyID: "domainid",
}

// AssessmentTag is the schema definition for catalog.assessmenttag
var AssessmentTag = JunctionTable{
	Table:      "catalog.assessmenttag",
	ContentID:  "assessmentid",
	TaxonomyID: "tagid",
}

// AssessmentPathology is the schema definition for catalog.assessmentpathology
var AssessmentPathology = JunctionTable{
	Table:      "catalog.assessmentpathology",
	ContentID:  "assessmentid",
	TaxonomyID: "pathologyid",
}

// ResourceDomain is the schema definition for catalog.resourcedomain
var ResourceDomain = JunctionTable{
	Table:      "catalog.resourcedomain",
	ContentID:  "resourceid",
	TaxonomyID: "domainid",
}

// ResourceTag is the schema definition for catalog.resourcetag
var ResourceTag = JunctionTable{
	Table:      "catalog.resourcetag",
	ContentID:  "resourceid",
	TaxonomyID: "tagid",
}

// ToolDomain is the schema definition for catalog.tooldomain
var ToolDomain = JunctionTable{
	Table:      "catalog.tooldomain",
	ContentID:  "toolid",
	TaxonomyID: "domainid",
}

// ToolTag is the schema definition for catalog.tooltag
var ToolTag = JunctionTable{
	Table:      "catalog.tooltag",
	ContentID:  "toolid",
	TaxonomyID: "tagid",
}
