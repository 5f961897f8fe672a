package views

import (
	"context"
	"errors"
	"io"
	"time"

	"adminconsole/apiclient"
	"adminconsole/export"
	"adminconsole/forms"
	"adminconsole/models"
	"adminconsole/poller"
	"adminconsole/tableview"

	"go.uber.org/zap"
)

var (
	ErrReadOnly = errors.New("view-is-read-only")
	ErrNotFound = errors.New("record-not-found")
)

// View is one polled, locally filtered, sorted and paginated table.
type View interface {
	Name() string
	Title() string
	Columns() []ColumnInfo
	Allows(role models.Role) bool
	Form() *forms.Form
	Start(ctx context.Context)
	Stop()
	Refresh(ctx context.Context) error
	Query(st tableview.State) Result
	Export(st tableview.State) ([]export.Column, [][]interface{})
	Create(ctx context.Context, sub *forms.Submission) error
	Delete(ctx context.Context, id string) error
}

type ColumnInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Money bool   `json:"money,omitempty"`
}

// Result is one rendered page of a view.
type Result struct {
	View      string                   `json:"view"`
	Columns   []ColumnInfo             `json:"columns"`
	Rows      []map[string]interface{} `json:"rows"`
	Page      int                      `json:"page"`
	PageSize  int                      `json:"page_size"`
	PageCount int                      `json:"page_count"`
	Total     int                      `json:"total"`
	Sort      tableview.Sort           `json:"sort"`
	UpdatedAt time.Time                `json:"updated_at"`
	Error     string                   `json:"error,omitempty"`
}

// Definition declares a view over a collection of T.
type Definition[T any] struct {
	Name     string
	Title    string
	Resource apiclient.Resource
	Roles    []models.Role
	Columns  []tableview.Column[T]
	Key      func(T) string
	Form     *forms.Form
	// Prepare fills derived and fixed fields before a create is sent upstream.
	Prepare func(*forms.Submission) error
}

type Table[T any] struct {
	def    Definition[T]
	table  tableview.Table[T]
	client *apiclient.Client
	poller *poller.Poller[T]
	log    *zap.Logger
}

func New[T any](client *apiclient.Client, def Definition[T], interval time.Duration, log *zap.Logger) *Table[T] {
	if log == nil {
		log = zap.NewNop()
	}

	fetch := func(ctx context.Context) ([]T, error) {
		return apiclient.List[T](ctx, client, def.Resource)
	}

	return &Table[T]{
		def:    def,
		table:  tableview.Table[T]{Columns: def.Columns},
		client: client,
		poller: poller.New[T](def.Name, interval, fetch, log),
		log:    log.With(zap.String("view", def.Name)),
	}
}

func (t *Table[T]) Name() string      { return t.def.Name }
func (t *Table[T]) Title() string     { return t.def.Title }
func (t *Table[T]) Form() *forms.Form { return t.def.Form }

// Allows reports whether role may open the view. Admins see everything; a view
// without roles is open to any signed-in user.
func (t *Table[T]) Allows(role models.Role) bool {
	if role == models.Admin || len(t.def.Roles) == 0 {
		return true
	}
	for _, r := range t.def.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (t *Table[T]) Start(ctx context.Context)         { t.poller.Start(ctx) }
func (t *Table[T]) Stop()                             { t.poller.Stop() }
func (t *Table[T]) Refresh(ctx context.Context) error { return t.poller.Refresh(ctx) }

// Items is the current collection.
func (t *Table[T]) Items() []T {
	return t.poller.Items()
}

// Find looks a record up by id in the current collection.
func (t *Table[T]) Find(id string) (T, bool) {
	for _, item := range t.poller.Items() {
		if t.def.Key(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Lookup finds a record, refreshing once when the current collection does not
// have it yet.
func (t *Table[T]) Lookup(ctx context.Context, id string) (T, error) {
	if item, ok := t.Find(id); ok {
		return item, nil
	}

	if err := t.poller.Refresh(ctx); err != nil {
		var zero T
		return zero, err
	}

	if item, ok := t.Find(id); ok {
		return item, nil
	}

	var zero T
	return zero, ErrNotFound
}

func (t *Table[T]) Columns() []ColumnInfo {
	out := make([]ColumnInfo, len(t.def.Columns))
	for i, c := range t.def.Columns {
		out[i] = ColumnInfo{Name: c.Name, Title: c.Title, Money: c.Money}
	}
	return out
}

func (t *Table[T]) row(item T) map[string]interface{} {
	r := make(map[string]interface{}, len(t.def.Columns)+1)
	r["id"] = t.def.Key(item)
	for _, c := range t.def.Columns {
		r[c.Name] = c.Value(item)
	}
	return r
}

func (t *Table[T]) Query(st tableview.State) Result {
	snap := t.poller.Snapshot()
	page := t.table.Apply(snap.Items, st)

	rows := make([]map[string]interface{}, len(page.Items))
	for i, item := range page.Items {
		rows[i] = t.row(item)
	}

	res := Result{
		View:      t.def.Name,
		Columns:   t.Columns(),
		Rows:      rows,
		Page:      page.Page,
		PageSize:  page.PageSize,
		PageCount: page.PageCount,
		Total:     page.Total,
		Sort:      page.Sort,
		UpdatedAt: snap.UpdatedAt,
	}
	if snap.Err != nil {
		res.Error = snap.Err.Error()
	}
	return res
}

// Export returns every filtered and sorted row, unpaginated.
func (t *Table[T]) Export(st tableview.State) ([]export.Column, [][]interface{}) {
	cols := make([]export.Column, len(t.def.Columns))
	for i, c := range t.def.Columns {
		cols[i] = export.Column{Title: c.Title, Money: c.Money}
	}

	items := t.table.Rows(t.poller.Items(), st)
	rows := make([][]interface{}, len(items))
	for n, item := range items {
		row := make([]interface{}, len(t.def.Columns))
		for i, c := range t.def.Columns {
			row[i] = c.Value(item)
		}
		rows[n] = row
	}

	return cols, rows
}

// Create sends the submission upstream and resyncs the collection.
func (t *Table[T]) Create(ctx context.Context, sub *forms.Submission) error {
	if t.def.Form == nil {
		return ErrReadOnly
	}

	if t.def.Prepare != nil {
		if err := t.def.Prepare(sub); err != nil {
			return err
		}
	}

	var err error
	if t.def.Form.Multipart() {
		err = t.createMultipart(ctx, sub)
	} else {
		_, err = t.client.Create(ctx, t.def.Resource, sub.JSON())
	}
	if err != nil {
		return err
	}

	t.resync(ctx)
	return nil
}

func (t *Table[T]) createMultipart(ctx context.Context, sub *forms.Submission) error {
	var files []apiclient.File
	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	for field, headers := range sub.Files {
		for _, fh := range headers {
			f, err := fh.Open()
			if err != nil {
				return err
			}
			closers = append(closers, f)
			files = append(files, apiclient.File{Field: field, Filename: fh.Filename, Content: f})
		}
	}

	_, err := t.client.CreateMultipart(ctx, t.def.Resource, sub.Values, files)
	return err
}

func (t *Table[T]) Delete(ctx context.Context, id string) error {
	if t.def.Form == nil {
		return ErrReadOnly
	}

	if err := t.client.Delete(ctx, t.def.Resource, id); err != nil {
		return err
	}

	t.resync(ctx)
	return nil
}

// Resync refreshes after a mutation that went through another endpoint.
func (t *Table[T]) Resync(ctx context.Context) {
	t.resync(ctx)
}

func (t *Table[T]) resync(ctx context.Context) {
	// the write already succeeded; a failed refresh only delays the new rows
	if err := t.poller.Refresh(ctx); err != nil {
		t.log.Warn("resync after mutation failed", zap.Error(err))
	}
}
