// AngelaMos | 2026
// pipeline.go

package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/gborh1/CRM-real-estate/internal/avatar"
	"github.com/gborh1/CRM-real-estate/internal/contact"
	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/property"
	"github.com/gborh1/CRM-real-estate/internal/user"
)

const (
	refFirstName = "first_name"
	refLastName  = "last_name"
)

// Report summarizes one import. Matched is false when no user carries the
// submitted name; nothing is written in that case.
type Report struct {
	Matched           bool     `json:"matched"`
	UserID            string   `json:"user_id,omitempty"`
	FieldsUpdated     []string `json:"fields_updated"`
	Attachments       []string `json:"attachments"`
	PropertiesCreated int      `json:"properties_created"`
	ContactsCreated   int      `json:"contacts_created"`
	Warnings          []string `json:"warnings"`
}

func (r *Report) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

type Pipeline struct {
	store   Store
	fetcher Fetcher
	avatars *avatar.Picker
	logger  *slog.Logger
}

func NewPipeline(
	store Store,
	fetcher Fetcher,
	avatars *avatar.Picker,
	logger *slog.Logger,
) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		store:   store,
		fetcher: fetcher,
		avatars: avatars,
		logger:  logger,
	}
}

type pendingAttachment struct {
	kind user.AttachmentKind
	file *File
}

// Run applies one form submission. Everything is fetched and parsed before
// the first write, and all writes share one transaction.
func (p *Pipeline) Run(ctx context.Context, answers []Answer) (*Report, error) {
	ctx, span := core.StartSpan(ctx, "import.run",
		attribute.Int("import.answers", len(answers)),
	)
	defer span.End()

	report, err := p.run(ctx, answers)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("import.matched", report.Matched),
		attribute.Int("import.contacts_created", report.ContactsCreated),
	)
	return report, nil
}

func (p *Pipeline) run(ctx context.Context, answers []Answer) (*Report, error) {
	report := newReport()

	u, err := p.resolveUser(ctx, answers)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return report, nil
	}
	report.Matched = true
	report.UserID = u.ID

	var pending []pendingAttachment
	var sheet *Sheet

	for _, a := range answers {
		ref := a.Ref()
		if ref == refFirstName || ref == refLastName {
			continue
		}

		if u.Profile.Set(ref, a.Value()) {
			report.FieldsUpdated = append(report.FieldsUpdated, ref)
			continue
		}

		kind, ok := user.ParseAttachmentKind(ref)
		if !ok {
			p.logger.DebugContext(ctx, "ignoring form answer", "ref", ref)
			continue
		}

		url := a.FileURL
		if url == "" {
			url = a.Value()
		}
		if url == "" {
			report.warn("%s: answer has no file url", ref)
			continue
		}

		file, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", ref, err)
		}
		pending = append(pending, pendingAttachment{kind: kind, file: file})
		core.AddSpanEvent(ctx, "attachment fetched",
			attribute.String("attachment.kind", string(kind)),
			attribute.Int("attachment.bytes", len(file.Content)),
		)

		if kind == user.AttachmentDatabase {
			if sheet, err = ParseSpreadsheet(file.Content); err != nil {
				return nil, fmt.Errorf("parse %s: %w", ref, err)
			}
		}
	}

	err = p.store.WithinTx(ctx, func(w Writer) error {
		if len(report.FieldsUpdated) > 0 {
			if err := w.UpdateProfile(ctx, u); err != nil {
				return err
			}
		}

		for _, att := range pending {
			if err := w.SaveAttachment(ctx, &user.Attachment{
				UserID:      u.ID,
				Kind:        att.kind,
				Content:     att.file.Content,
				ContentType: att.file.ContentType,
				Size:        int64(len(att.file.Content)),
			}); err != nil {
				return err
			}
			report.Attachments = append(report.Attachments, string(att.kind))
		}

		if sheet != nil {
			return p.ingest(ctx, w, u.ID, sheet, report)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "import applied",
		"user_id", u.ID,
		"fields", len(report.FieldsUpdated),
		"attachments", len(report.Attachments),
		"contacts", report.ContactsCreated,
		"properties", report.PropertiesCreated,
		"warnings", len(report.Warnings),
	)

	return report, nil
}

// ImportFile ingests a local spreadsheet for a known user with the same
// all-or-nothing semantics as a webhook delivery.
func (p *Pipeline) ImportFile(
	ctx context.Context,
	userID string,
	data []byte,
) (*Report, error) {
	ctx, span := core.StartSpan(ctx, "import.file", attribute.String("user.id", userID))
	defer span.End()

	u, err := p.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("import file: %w", err)
	}

	sheet, err := ParseSpreadsheet(data)
	if err != nil {
		return nil, err
	}

	report := newReport()
	report.Matched = true
	report.UserID = u.ID

	err = p.store.WithinTx(ctx, func(w Writer) error {
		return p.ingest(ctx, w, u.ID, sheet, report)
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	return report, nil
}

// resolveUser returns nil without error when no user matches.
func (p *Pipeline) resolveUser(ctx context.Context, answers []Answer) (*user.User, error) {
	var first, last string
	for _, a := range answers {
		switch a.Ref() {
		case refFirstName:
			first = user.NormalizeName(a.Value())
		case refLastName:
			last = user.NormalizeName(a.Value())
		}
	}

	if first == "" && last == "" {
		p.logger.InfoContext(ctx, "form response carries no name")
		return nil, nil
	}

	users, err := p.store.FindUsersByName(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	switch len(users) {
	case 0:
		p.logger.InfoContext(ctx, "no user matches form response",
			"first_name", first,
			"last_name", last,
		)
		return nil, nil
	case 1:
		return &users[0], nil
	default:
		return nil, fmt.Errorf("%w: %s %s (%d users)", ErrAmbiguousUser, first, last, len(users))
	}
}

func (p *Pipeline) ingest(
	ctx context.Context,
	w Writer,
	userID string,
	sheet *Sheet,
	report *Report,
) error {
	for _, col := range sheet.UnknownColumns() {
		report.warn("column %q ignored", col)
	}

	for _, row := range sheet.Rows {
		c, prop, err := p.buildContact(row, report)
		if err != nil {
			return err
		}

		if prop != nil {
			if err := w.CreateProperty(ctx, prop); err != nil {
				return fmt.Errorf("row %d: %w", row.Line, err)
			}
			c.PropertyID = &prop.ID
			report.PropertiesCreated++
		}

		if err := w.CreateContact(ctx, c); err != nil {
			return fmt.Errorf("row %d: %w", row.Line, err)
		}
		if err := w.LinkContact(ctx, userID, c.ID); err != nil {
			return fmt.Errorf("row %d: %w", row.Line, err)
		}
		report.ContactsCreated++
	}

	return nil
}

func (p *Pipeline) buildContact(
	row SheetRow,
	report *Report,
) (*contact.Contact, *property.Property, error) {
	first, _ := row.Get(colPrimaryFirstName)
	last, _ := row.Get(colPrimaryLastName)
	if first == "" || last == "" {
		return nil, nil, fmt.Errorf(
			"%w: row %d: primary first and last name are required",
			ErrInvalidRow, row.Line,
		)
	}

	c := &contact.Contact{
		ID:                 uuid.NewString(),
		PrimaryFirstName:   first,
		PrimaryLastName:    last,
		SecondaryFirstName: optional(row, colSecondaryFirstName),
		SecondaryLastName:  optional(row, colSecondaryLastName),
		PrimaryEmail:       optional(row, colPrimaryEmail),
		SecondaryEmail:     optional(row, colSecondaryEmail),
		Notes:              optional(row, colNotes),
		Status:             contact.StatusInactive,
		MailPreference:     contact.MailAll,
		ImageURL:           contact.ImageFor(p.avatars, first),
		IsVisible:          true,
	}

	c.PrimaryPhone = phone(row, colPrimaryPhone, report)
	c.SecondaryPhone = phone(row, colSecondaryPhone, report)

	dates := []struct {
		col string
		dst **time.Time
	}{
		{colPrimaryDOB, &c.PrimaryDOB},
		{colSecondaryDOB, &c.SecondaryDOB},
	}
	for _, d := range dates {
		raw, ok := row.Get(d.col)
		if !ok {
			continue
		}
		t, err := ParseDate(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %s: %w", ErrInvalidRow, row.Line, d.col, err)
		}
		*d.dst = &t
	}

	if raw, ok := row.Get(colStatus); ok {
		if status, ok := contact.ParseStatus(raw); ok {
			c.Status = status
		} else {
			report.warn("row %d: status %q not recognized, using %s", row.Line, raw, c.Status)
		}
	}

	if raw, ok := row.Get(colMailPreference); ok {
		if pref, ok := contact.ParseMailPreference(raw); ok {
			c.MailPreference = pref
		} else {
			report.warn(
				"row %d: mail_preference %q not recognized, using %s",
				row.Line, raw, c.MailPreference,
			)
		}
	}

	if raw, ok := row.Get(colPastClient); ok {
		v, ok := ParseFlag(raw)
		if !ok {
			report.warn("row %d: past_client %q not recognized, using false", row.Line, raw)
		}
		c.PastClient = v
	}

	return c, rowProperty(row), nil
}

// rowProperty returns a property only when address, city, state and zip
// are all present. Suite alone never creates one.
func rowProperty(row SheetRow) *property.Property {
	address, _ := row.Get(colAddress)
	city, _ := row.Get(colCity)
	state, _ := row.Get(colState)
	zip, _ := row.Get(colZipCode)

	if !property.Complete(address, city, state, zip) {
		return nil
	}

	return &property.Property{
		ID:      uuid.NewString(),
		Address: address,
		Suite:   optional(row, colSuite),
		City:    city,
		State:   state,
		ZipCode: zip,
	}
}

func optional(row SheetRow, col string) *string {
	v, ok := row.Get(col)
	if !ok {
		return nil
	}
	return &v
}

// phone normalizes a number, keeping the raw text with a warning when it
// does not parse.
func phone(row SheetRow, col string, report *Report) *string {
	raw, ok := row.Get(col)
	if !ok {
		return nil
	}

	normalized, err := contact.NormalizePhone(raw)
	if err != nil {
		report.warn("row %d: %s %q kept as entered", row.Line, col, raw)
		return &raw
	}
	return &normalized
}

func newReport() *Report {
	return &Report{
		FieldsUpdated: []string{},
		Attachments:   []string{},
		Warnings:      []string{},
	}
}
