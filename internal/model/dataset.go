package model

import "fmt"

// System columns prepended to every persisted row.
const (
	ColUploadID       = "upload_id"
	ColUploadedAt     = "uploaded_at"
	ColSourceFilename = "source_filename"
)

// SystemColumns returns the system column names in storage order.
func SystemColumns() []string {
	return []string{ColUploadID, ColUploadedAt, ColSourceFilename}
}

// Dataset describes one independent named collection: its table name and the
// ordered canonical schema it persists. Descriptors are immutable; the
// repository derives DDL and statements from them.
type Dataset struct {
	Name   string
	Schema []Field
}

// FieldNames returns the canonical column names in schema order.
func (d Dataset) FieldNames() []string {
	names := make([]string, len(d.Schema))
	for i, f := range d.Schema {
		names[i] = f.Name
	}
	return names
}

var (
	failReasonGroup = &Group{Tokens: []string{"failure", "reason"}, Literal: "fail reason"}
	rootCauseGroup  = &Group{Tokens: []string{"root", "cause"}}
	conclusionGroup = &Group{Tokens: []string{"test", "conclusion"}, Phases: Phases}
)

// controlFields is the canonical schema shared by the control-status style
// datasets. Alias order is load-bearing: the first alias present in an
// upload wins, so reordering changes which source column is read.
var controlFields = []Field{
	{Name: "IT Solution", Aliases: []string{"it solution", "it solutions"}},
	{Name: "MICS ID", Aliases: []string{"mics id", "micsid", "mics"}},
	{Name: "BU Country/Owner", Aliases: []string{"bu country/owner", "bu country", "bu owner"}},
	{Name: "Zone", Aliases: []string{"zone"}},
	{Name: "Control Owner", Aliases: []string{"control owner", "owner"}},
	{Name: "Control Tester", Aliases: []string{"control tester", "tester"}},
	{Name: "Control Reviewer", Aliases: []string{"control reviewer", "reviewer"}},
	{Name: "Control Executer", Aliases: []string{
		"control executer",
		"control executor",
		"controlexecutor (zcm lookup) (mics_zonalcontrolmaster)",
		"executor",
	}},
	{Name: "Control Status", Aliases: []string{"control status", "status"}},
	{Name: "Test Conclusion (OE1 / OE2 / YE)", Group: conclusionGroup},
	{Name: "Fail Reason", Group: failReasonGroup},
	{Name: "Root Cause", Group: rootCauseGroup},
}

var ticketFields = []Field{
	{Name: "Ticket ID", Aliases: []string{"ticket id", "ticketid", "ticket"}},
	{Name: "MICS ID", Aliases: []string{"mics id", "micsid", "mics"}},
	{Name: "Title", Aliases: []string{"title", "summary", "short description"}},
	{Name: "Ticket Status", Aliases: []string{"ticket status", "status", "state"}},
	{Name: "Assignee", Aliases: []string{"assignee", "assigned to", "owner"}},
	{Name: "Opened", Aliases: []string{"opened", "created", "open date"}},
	{Name: "Closed", Aliases: []string{"closed", "resolved", "close date"}},
	{Name: "Root Cause", Group: rootCauseGroup},
}

var effortFields = []Field{
	{Name: "MICS ID", Aliases: []string{"mics id", "micsid", "mics"}},
	{Name: "Activity", Aliases: []string{"activity", "task", "description"}},
	{Name: "Executor", Aliases: []string{"executor", "control executer", "control executor"}},
	{Name: "Effort Hours", Aliases: []string{"effort hours", "effort (h)", "hours", "effort"}},
	{Name: "Period", Aliases: []string{"period", "month", "reporting period"}},
}

var agreementFields = []Field{
	{Name: "Agreement ID", Aliases: []string{"agreement id", "sla id", "agreement"}},
	{Name: "IT Solution", Aliases: []string{"it solution", "it solutions"}},
	{Name: "Provider", Aliases: []string{"provider", "vendor", "supplier"}},
	{Name: "Agreement Status", Aliases: []string{"agreement status", "status"}},
	{Name: "Valid From", Aliases: []string{"valid from", "start date"}},
	{Name: "Valid To", Aliases: []string{"valid to", "end date", "expiry"}},
}

// The six datasets. Fully independent stores: no schema or row is shared
// between them.
var (
	Controls          = Dataset{Name: "controls", Schema: controlFields}
	Tickets           = Dataset{Name: "tickets", Schema: ticketFields}
	Effort            = Dataset{Name: "effort", Schema: effortFields}
	ServiceAgreements = Dataset{Name: "service_agreements", Schema: agreementFields}
	SecurityTickets   = Dataset{Name: "security_tickets", Schema: ticketFields}
	SecurityEffort    = Dataset{Name: "security_effort", Schema: effortFields}
)

// Datasets lists every known dataset descriptor.
var Datasets = []Dataset{Controls, Tickets, Effort, ServiceAgreements, SecurityTickets, SecurityEffort}

// DatasetByName looks up a dataset descriptor by its collection name.
func DatasetByName(name string) (Dataset, error) {
	for _, d := range Datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return Dataset{}, fmt.Errorf("unknown dataset %q", name)
}
