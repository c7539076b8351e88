package demo

import (
	"time"

	"github.com/goliatone/go-adminkit/pkg/schema"
	"github.com/goliatone/go-adminkit/pkg/table"
)

// Column keys of the roster table.
var columnKeys = []string{"id", "name", "email", "grade", "score", "track", "joined"}

var trackLabels = map[string]string{"sci": "Science", "hum": "Humanities"}

// Columns describes the roster table. The id and email columns start hidden.
func Columns() []table.Column[Student] {
	return []table.Column[Student]{
		{Key: "id", Header: "ID", Accessor: table.Value(func(s Student) string { return s.ID }), Hidden: true, DisableSort: true},
		{Key: "name", Accessor: table.Value(func(s Student) string { return s.Name() })},
		{Key: "email", Accessor: table.Value(func(s Student) string { return s.Email }), Hidden: true},
		{Key: "grade", Accessor: table.Value(func(s Student) int { return s.Grade }), Format: table.Ordinal},
		{Key: "score", Accessor: table.Value(func(s Student) float64 { return s.Score })},
		{
			Key:      "track",
			Accessor: table.Value(func(s Student) string { return s.Track }),
			Cell: func(s Student) any {
				if s.Track == "" {
					return table.HTML("<em>none</em>")
				}
				return trackLabels[s.Track]
			},
		},
		{Key: "joined", Accessor: table.Value(func(s Student) time.Time { return s.Joined }), Format: table.Relative},
	}
}

// AddStudentForm is the schema of the add-student modal.
func AddStudentForm() *schema.Object {
	minGrade, maxGrade := 1.0, 12.0
	choices := []schema.Choice{{Value: "sci", Label: trackLabels["sci"]}, {Value: "hum", Label: trackLabels["hum"]}}
	return schema.NewObject(schema.Meta{Label: "Add Student"},
		schema.Prop("fname", &schema.String{Meta: schema.Meta{Label: "First Name", Placeholder: "Blaise", Required: true}}),
		schema.Prop("lname", &schema.String{Meta: schema.Meta{Label: "Last Name", Placeholder: "Pascal", Required: true}}),
		schema.Prop("email", &schema.String{Meta: schema.Meta{Label: "Email Address", Placeholder: "blaise.pascal@gmail.com", Required: true}, Format: "email"}),
		schema.Prop("grade", &schema.Number{Meta: schema.Meta{Label: "Grade", Required: true}, Integer: true, Min: &minGrade, Max: &maxGrade}),
		schema.Prop("track", schema.MakeOptional(&schema.Enum{Meta: schema.Meta{Label: "Track"}, Choices: choices})),
		schema.Prop("newsletter", &schema.Boolean{Meta: schema.Meta{Label: "Subscribe to the newsletter"}}),
	)
}

// InviteForm is the schema of the standalone invitation page.
func InviteForm() *schema.Object {
	roles := []schema.Choice{{Value: "student"}, {Value: "guardian"}, {Value: "teacher"}}
	return schema.NewObject(schema.Meta{Label: "Invite", Description: "Send an invitation to join the roster."},
		schema.Prop("email", &schema.String{Meta: schema.Meta{Label: "Email Address", Required: true}, Format: "email"}),
		schema.Prop("role", &schema.Enum{Meta: schema.Meta{Label: "Role", Required: true}, Choices: roles, Default: "student"}),
		schema.Prop("message", schema.MakeOptional(&schema.String{Meta: schema.Meta{Label: "Message"}, Multiline: true})),
	)
}
