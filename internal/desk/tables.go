package desk

import (
	"context"
	"database/sql"
	"slices"

	"github.com/erazemk/assetdesk/internal/model"
	"github.com/erazemk/assetdesk/internal/store"
	"github.com/erazemk/assetdesk/internal/table"
)

// Schema is a named table: its columns and whether only admins may open it.
type Schema struct {
	Name      string
	Columns   []table.Column
	AdminOnly bool
}

var familyColumns = []table.Column{
	{AccessorKey: "name", Header: "Name", Width: 250},
	{AccessorKey: "category", Header: "Category", Width: 200},
	{AccessorKey: "vendor", Header: "Vendor/Manufacturer", Width: 200},
	{AccessorKey: "total", Header: "Total Units", Width: 120},
	{AccessorKey: "assigned", Header: "Assigned", Width: 120},
	{AccessorKey: "available", Header: "Available", Width: 120},
	{AccessorKey: "actions", Header: "", Width: 60},
}

var schemas = map[string]Schema{
	"users": {Name: "users", AdminOnly: true, Columns: []table.Column{
		{AccessorKey: "fullName", Header: "Name", Width: 250},
		{AccessorKey: "email", Header: "Email", Width: 250},
		{AccessorKey: "jobTitle", Header: "Job Title", Width: 200},
		{AccessorKey: "department", Header: "Department", Width: 200},
		{AccessorKey: "assets", Header: "Assigned Assets", Width: 120},
		{AccessorKey: "userStatus", Header: "Status", Width: 100},
		{AccessorKey: "view", Header: "", Width: 120},
	}},
	"requests": {Name: "requests", Columns: []table.Column{
		{AccessorKey: "item", Header: "Item", Width: 300},
		{AccessorKey: "requestedBy.fullName", Header: "Requested By", Width: 200},
		{AccessorKey: "requestDate", Header: "Request Date", Width: 150},
		{AccessorKey: "status", Header: "Status", Width: 180},
		{AccessorKey: "actions", Header: "Actions", Width: 120},
	}},
	"assets": {Name: "assets", Columns: []table.Column{
		{AccessorKey: "assetId", Header: "Asset ID", Width: 140},
		{AccessorKey: "title", Header: "Title", Width: 200},
		{AccessorKey: "familyId", Header: "Product/Family", Width: 180},
		{AccessorKey: "assignedUser", Header: "Assigned To", Width: 200},
		{AccessorKey: "activeUsers", Header: "Active Users", Width: 120},
		{AccessorKey: "status", Header: "Status", Width: 120},
		{AccessorKey: "purchaseDate", Header: "Purchase Date", Width: 140},
		{AccessorKey: "cost", Header: "Cost", Width: 100},
		{AccessorKey: "actions", Header: "", Width: 60},
	}},
	"licenses": {Name: "licenses", AdminOnly: true, Columns: familyColumns},
	"hardware": {Name: "hardware", AdminOnly: true, Columns: familyColumns},
	"families": {Name: "families", AdminOnly: true, Columns: []table.Column{
		{AccessorKey: "name", Header: "Product Name"},
		{AccessorKey: "assetType", Header: "Type"},
		{AccessorKey: "productCode", Header: "Code"},
	}},
	"vendors": {Name: "vendors", AdminOnly: true, Columns: []table.Column{
		{AccessorKey: "name", Header: "Vendor Name"},
		{AccessorKey: "contactName", Header: "Contact"},
		{AccessorKey: "email", Header: "Email"},
		{AccessorKey: "website", Header: "Website"},
	}},
	"tasks": {Name: "tasks", AdminOnly: true, Columns: []table.Column{
		{AccessorKey: "title", Header: "Title", Width: 250},
		{AccessorKey: "assignedTo.fullName", Header: "Assigned To", Width: 200},
		{AccessorKey: "status", Header: "Status", Width: 120},
		{AccessorKey: "priority", Header: "Priority", Width: 100},
		{AccessorKey: "dueDate", Header: "Due Date", Width: 140},
	}},
}

// TableNames lists the known tables in name order.
func TableNames() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// schemaFor returns a table viewer may open.
func schemaFor(name string, viewer *model.User) (Schema, error) {
	s, ok := schemas[name]
	if !ok {
		return Schema{}, notFound("table", name)
	}
	if viewer == nil || (s.AdminOnly && !isAdmin(viewer)) {
		return Schema{}, ErrForbidden
	}
	return s, nil
}

// TableRequest is a table query. FamilyID narrows the assets table to one
// family. Toggle is a click on a column header: it moves Sort one step
// through its cycle before the query runs.
type TableRequest struct {
	table.Query
	FamilyID string `json:"familyId"`
	Toggle   string `json:"toggle"`
}

// QueryTable runs a table query through viewer's saved view.
func (d *Desk) QueryTable(ctx context.Context, viewer *model.User, name string, req TableRequest) (*table.Result, error) {
	s, err := schemaFor(name, viewer)
	if err != nil {
		return nil, err
	}
	if !req.Mode.Valid() {
		return nil, invalid("unknown search mode %q", req.Mode)
	}
	if req.Toggle != "" {
		if !slices.ContainsFunc(s.Columns, func(c table.Column) bool { return c.AccessorKey == req.Toggle }) {
			return nil, invalid("table %s has no column %q", name, req.Toggle)
		}
		sort := req.Sort.Toggle(req.Toggle)
		req.Sort = &sort
	}
	view, err := d.view(ctx, viewer, s)
	if err != nil {
		return nil, err
	}
	rows, err := d.rows(ctx, viewer, s.Name, req.FamilyID)
	if err != nil {
		return nil, err
	}
	res := table.Apply(s.Columns, rows, req.Query, *view)
	return &res, nil
}

func (d *Desk) rows(ctx context.Context, viewer *model.User, name, familyID string) ([]table.Row, error) {
	switch name {
	case "users":
		users, err := d.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		assets, err := store.ListAssets(ctx, d.db, store.AssetFilter{})
		if err != nil {
			return nil, err
		}
		rows, err := table.RowsOf(users)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			n := 0
			for j := range assets {
				if assets[j].AssignedTo(users[i].ID) {
					n++
				}
			}
			rows[i]["assets"] = float64(n)
		}
		return rows, nil
	case "requests":
		requests, err := d.ListRequests(ctx, viewer)
		if err != nil {
			return nil, err
		}
		return table.RowsOf(requests)
	case "assets":
		assets, err := d.ListAssets(ctx, viewer, familyID)
		if err != nil {
			return nil, err
		}
		return table.RowsOf(assets)
	case "licenses":
		summaries, err := d.FamilySummaries(ctx, model.AssetTypeLicense)
		if err != nil {
			return nil, err
		}
		return table.RowsOf(summaries)
	case "hardware":
		summaries, err := d.FamilySummaries(ctx, model.AssetTypeHardware)
		if err != nil {
			return nil, err
		}
		return table.RowsOf(summaries)
	case "families":
		families, err := d.ListFamilies(ctx, "")
		if err != nil {
			return nil, err
		}
		return table.RowsOf(families)
	case "vendors":
		vendors, err := d.ListVendors(ctx)
		if err != nil {
			return nil, err
		}
		return table.RowsOf(vendors)
	case "tasks":
		tasks, err := d.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		return table.RowsOf(tasks)
	}
	return nil, notFound("table", name)
}

// view loads viewer's view of a table with the columns reconciled against
// the schema. A table never adjusted gets the defaults.
func (d *Desk) view(ctx context.Context, viewer *model.User, s Schema) (*model.TableView, error) {
	view, err := store.GetTableView(ctx, d.db, viewer.ID, s.Name)
	if err != nil {
		return nil, err
	}
	if view == nil {
		view = &model.TableView{UserID: viewer.ID, Table: s.Name, Settings: model.DefaultViewSettings()}
	}
	view.Columns = table.Reconcile(view.Columns, s.Columns)
	return view, nil
}

// TableView returns viewer's view of a table.
func (d *Desk) TableView(ctx context.Context, viewer *model.User, name string) (*model.TableView, error) {
	s, err := schemaFor(name, viewer)
	if err != nil {
		return nil, err
	}
	return d.view(ctx, viewer, s)
}

// SaveColumns stores viewer's column configuration of a table. Every column
// must belong to the schema. Columns left out are stored hidden. An empty
// list restores the defaults.
func (d *Desk) SaveColumns(ctx context.Context, viewer *model.User, name string, columns []model.ColumnConfig) (*model.TableView, error) {
	s, err := schemaFor(name, viewer)
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for _, c := range columns {
		known := slices.ContainsFunc(s.Columns, func(col table.Column) bool { return col.AccessorKey == c.ID })
		if !known {
			return nil, invalid("table %s has no column %q", name, c.ID)
		}
		if seen[c.ID] {
			return nil, invalid("column %q listed twice", c.ID)
		}
		if c.Width < 0 {
			return nil, invalid("column %q has a negative width", c.ID)
		}
		seen[c.ID] = true
	}
	if len(columns) > 0 {
		columns = table.Complete(columns, s.Columns)
	}
	return d.saveView(ctx, viewer, s, func(v *model.TableView) { v.Columns = columns })
}

// SaveSettings stores viewer's table settings.
func (d *Desk) SaveSettings(ctx context.Context, viewer *model.User, name string, settings model.ViewSettings) (*model.TableView, error) {
	s, err := schemaFor(name, viewer)
	if err != nil {
		return nil, err
	}
	switch settings.TableHeight {
	case "":
		settings.TableHeight = model.TableHeightFlexible
	case model.TableHeightFlexible, model.TableHeightFixed:
	default:
		return nil, invalid("unknown table height %q", settings.TableHeight)
	}
	return d.saveView(ctx, viewer, s, func(v *model.TableView) { v.Settings = settings })
}

func (d *Desk) saveView(ctx context.Context, viewer *model.User, s Schema, edit func(v *model.TableView)) (*model.TableView, error) {
	var view *model.TableView
	err := d.write(ctx, func(tx *sql.Tx) error {
		var err error
		view, err = store.GetTableView(ctx, tx, viewer.ID, s.Name)
		if err != nil {
			return err
		}
		if view == nil {
			view = &model.TableView{UserID: viewer.ID, Table: s.Name, Settings: model.DefaultViewSettings()}
		}
		edit(view)
		return store.SaveTableView(ctx, tx, view)
	})
	if err != nil {
		return nil, err
	}
	view.Columns = table.Reconcile(view.Columns, s.Columns)
	return view, nil
}
