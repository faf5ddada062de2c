// =============================================================================
// SEPA XML Export - Document
// =============================================================================
//
// A Document represents one SEPA message instance: head data (initiating
// party, message id, optional organisation id) plus an ordered sequence of
// payment collections. Collections are appended over the document's
// lifetime; Snapshot freezes the model for rendering.
//
// LIFECYCLE:
//   Building  -> collections and payments may be appended
//   Validated -> Snapshot succeeded; the returned model is immutable
//   Rendered  -> output units produced from the snapshot
//
// A failed Snapshot (for example on an empty document) leaves the document
// in Building state, so the caller can add data and retry.
//
// =============================================================================

package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/paybatch/sepaxml/internal/profile"
	"github.com/paybatch/sepaxml/internal/types"
	"github.com/paybatch/sepaxml/internal/validation"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds the head data of a new document.
type Config struct {
	// InitiatingParty is the name of the initiating party (max. 70
	// characters).
	InitiatingParty string

	// MessageID is the unique id of the message (max. 35 characters).
	// Left empty, a random hyphen-free UUID is used.
	MessageID string

	// Version selects the SEPA pain version of the document.
	Version profile.Version

	// OrgID optionally identifies the initiating party organisation.
	OrgID types.OrgID

	// InitiatingPartyID is an optional id of the initiating party.
	InitiatingPartyID string

	// CreationTime is the GrpHdr creation timestamp. Zero means now.
	// Injectable so generation stays deterministic for identical inputs.
	CreationTime time.Time

	// DisableChecks skips field format validation and sanitization.
	// Structural rules still apply; callers opting out accept
	// responsibility for schema violations.
	DisableChecks bool

	// SanitizeFlags selects which text fields are sanitized rather than
	// only checked. Ignored when DisableChecks is set.
	SanitizeFlags validation.Flags
}

// =============================================================================
// DOCUMENT
// =============================================================================

// Document is one SEPA message under construction. A Document and its
// collections must be owned by a single goroutine; independent documents
// may be built in parallel.
type Document struct {
	profile     *profile.Profile
	initgPty    string
	msgID       string
	initgPtyID  string
	orgID       types.OrgID
	createdAt   time.Time
	check       bool
	flags       validation.Flags
	collections []Collection
}

// NewCreditTransfer creates a pain.001 document.
func NewCreditTransfer(cfg Config) (*Document, error) {
	return newDocument(cfg, profile.CreditTransfer)
}

// NewDirectDebit creates a pain.008 document.
func NewDirectDebit(cfg Config) (*Document, error) {
	return newDocument(cfg, profile.DirectDebit)
}

func newDocument(cfg Config, want profile.MessageType) (*Document, error) {
	p, err := profile.ForVersion(cfg.Version)
	if err != nil {
		return nil, err
	}
	if p.Type != want {
		return nil, fmt.Errorf("version %s does not belong to this message family", p.ISOName)
	}

	if cfg.MessageID == "" {
		// The canonical UUID form is 36 characters, one over the MsgId
		// limit of 35; the hyphen-free form fits.
		cfg.MessageID = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	if cfg.CreationTime.IsZero() {
		cfg.CreationTime = time.Now()
	}

	if err := checkHeadLegality(p, cfg.OrgID, cfg.InitiatingPartyID); err != nil {
		return nil, err
	}

	d := &Document{
		profile:    p,
		initgPty:   cfg.InitiatingParty,
		msgID:      cfg.MessageID,
		initgPtyID: cfg.InitiatingPartyID,
		orgID:      cfg.OrgID,
		createdAt:  cfg.CreationTime,
		check:      !cfg.DisableChecks,
		flags:      cfg.SanitizeFlags,
	}

	if d.check {
		if d.initgPty, err = validation.CheckAndSanitize(validation.FieldInitiatingParty, d.initgPty, d.flags); err != nil {
			return nil, fieldErr("initiating_party", err)
		}
		if d.msgID, err = validation.Check(validation.FieldMessageID, d.msgID); err != nil {
			return nil, fieldErr("message_id", err)
		}
		if d.initgPtyID != "" {
			if d.initgPtyID, err = validation.Check(validation.FieldMessageID, d.initgPtyID); err != nil {
				return nil, fieldErr("initiating_party_id", err)
			}
		}
		if d.orgID.BIC != "" {
			if d.orgID.BIC, err = validation.Check(validation.FieldBIC, d.orgID.BIC); err != nil {
				return nil, fieldErr("orgid[bic]", err)
			}
		}
		if d.orgID.ID != "" {
			if d.orgID.ID, err = validation.Check(validation.FieldOrgID, d.orgID.ID); err != nil {
				return nil, fieldErr("orgid[id]", err)
			}
		}
		if d.orgID.SchemeName != "" {
			if d.orgID.SchemeName, err = validation.Check(validation.FieldSchemeName, d.orgID.SchemeName); err != nil {
				return nil, fieldErr("orgid[scheme_name]", err)
			}
		}
	} else if d.initgPty == "" {
		return nil, fieldErr("initiating_party", errFieldRequired)
	}

	return d, nil
}

// checkHeadLegality enforces the organisation id and initiating party id
// rules against the profile. Called at construction and again at Snapshot
// time, since the profile may reject fields the generic rules allow.
func checkHeadLegality(p *profile.Profile, orgID types.OrgID, initgPtyID string) error {
	if orgID.ID != "" && orgID.BIC != "" {
		return errOrgIDBothIDAndBIC
	}
	if orgID.SchemeName != "" {
		if !p.SupportsOrgIDSchemeName {
			return orgIDSchemeNameUnsupported(p.ISOName)
		}
		if orgID.ID == "" {
			return errOrgIDSchemeNameWithoutID
		}
	}
	if initgPtyID != "" && !p.SupportsInitgPtyID {
		return initgPtyIDUnsupported(p.ISOName)
	}
	return nil
}

// =============================================================================
// BUILDING
// =============================================================================

// AddCollection validates cfg, appends a collection of the version-matching
// variant and returns its mutable handle so payments can be appended.
func (d *Document) AddCollection(cfg types.CollectionConfig) (Collection, error) {
	c, err := newCollection(d.profile, cfg, d.createdAt.Format("2006-01-02"), d.check, d.flags)
	if err != nil {
		return nil, err
	}
	d.collections = append(d.collections, c)
	return c, nil
}

// Profile returns the document's version profile.
func (d *Document) Profile() *profile.Profile { return d.profile }

// MessageID returns the message id of the document.
func (d *Document) MessageID() string { return d.msgID }

// =============================================================================
// FREEZING
// =============================================================================

// Snapshot validates the document and freezes it for rendering:
//
//  1. Collections with zero payments are elided silently.
//  2. If nothing remains, ErrEmptyDocument is returned.
//  3. Head legality is re-checked against the profile.
//  4. Deferred per-version requirements (collection BIC for versions that
//     mandate it) are enforced.
//
// The returned snapshot is immutable; the document itself stays mutable,
// so a caller can recover from a failed Snapshot by adding data.
func (d *Document) Snapshot() (*Snapshot, error) {
	if err := checkHeadLegality(d.profile, d.orgID, d.initgPtyID); err != nil {
		return nil, err
	}

	blocks := make([]*CollectionBlock, 0, len(d.collections))
	for _, c := range d.collections {
		if c.PaymentCount() == 0 {
			continue
		}
		b := c.block()
		if d.profile.BICRequired && b.Config.BIC == "" {
			return nil, fieldErr("bic", errBICRequired(d.profile.ISOName))
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	return &Snapshot{
		Profile:           d.profile,
		InitiatingParty:   d.initgPty,
		MessageID:         d.msgID,
		InitiatingPartyID: d.initgPtyID,
		OrgID:             d.orgID,
		CreatedAt:         d.createdAt,
		Collections:       blocks,
	}, nil
}
