package extraction

// Missing is written for any field the service did not return.
const Missing = "-"

// Field names double as the sheet's output column headers, so their spelling
// (including "Employement Type") must match the sheet exactly.
const (
	FieldCompany          = "Company Name"
	FieldLocation         = "Location"
	FieldRole             = "Role"
	FieldEmploymentType   = "Employement Type"
	FieldSalary           = "Salary(Hour or Range)"
	FieldPostedDate       = "Posted date"
	FieldExperience       = "Experience Needed?"
	FieldSkills           = "Key Skills Mentioned"
	FieldSoftSkills       = "Extras Skills"
	FieldResponsibilities = "Responsibilities"
	FieldSummary          = "Job is about"
	FieldProjects         = "Projects"
	FieldTerm             = "Which Term?"
)

// FieldNames lists every extracted field in sheet order.
var FieldNames = []string{
	FieldCompany,
	FieldLocation,
	FieldRole,
	FieldEmploymentType,
	FieldSalary,
	FieldPostedDate,
	FieldExperience,
	FieldSkills,
	FieldSoftSkills,
	FieldResponsibilities,
	FieldSummary,
	FieldProjects,
	FieldTerm,
}

// Fields is the structured result of one extraction call, keyed by field name.
// Values are already flattened to strings.
type Fields map[string]string

// Get returns the value for name, or Missing if the service left it out.
func (f Fields) Get(name string) string {
	if v, ok := f[name]; ok && v != "" {
		return v
	}
	return Missing
}
