package band

import (
	"context"
	"net/url"

	"github.com/search5/openband/pkg/logging"
)

// Capability tokens the BAND API grants per band. A mutating operation
// checks membership before issuing any request.
const (
	CapPosting          = "posting"
	CapCommenting       = "commenting"
	CapContentsDeletion = "contents_deletion"
)

// PermissionSet is the set of capability tokens a band grants the user.
type PermissionSet map[string]struct{}

// Has reports whether the set contains the capability.
func (s PermissionSet) Has(capability string) bool {
	_, ok := s[capability]
	return ok
}

// Names returns the capabilities in the set.
func (s PermissionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}

func newPermissionSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Permissions returns the capability set for a band, fetching it on first
// access and caching it on the Band instance for its lifetime. Concurrent
// first accesses are collapsed into a single fetch.
func (c *Client) Permissions(ctx context.Context, b *Band) (PermissionSet, error) {
	b.permsMu.Lock()
	if b.perms != nil {
		perms := *b.perms
		b.permsMu.Unlock()
		return perms, nil
	}
	b.permsMu.Unlock()

	result, err, _ := b.permsGroup.Do(b.Key, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot.
		b.permsMu.Lock()
		if b.perms != nil {
			perms := *b.perms
			b.permsMu.Unlock()
			return perms, nil
		}
		b.permsMu.Unlock()

		perms, err := c.fetchPermissions(ctx, b.Key)
		if err != nil {
			return nil, err
		}

		b.permsMu.Lock()
		b.perms = &perms
		b.permsMu.Unlock()
		return perms, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(PermissionSet), nil
}

// fetchPermissions performs the actual permissions request.
func (c *Client) fetchPermissions(ctx context.Context, bandKey string) (PermissionSet, error) {
	params := url.Values{}
	params.Set("band_key", bandKey)
	// The endpoint only reports membership for the capabilities asked about.
	params.Set("permissions", CapPosting+","+CapCommenting+","+CapContentsDeletion)

	env, err := c.get(ctx, "/v2/band/permissions", params)
	if err != nil {
		return nil, err
	}

	var data struct {
		Permissions []string `json:"permissions"`
	}
	if err := decodeResultData(env, &data); err != nil {
		return nil, err
	}

	logging.Debug("Band", "band %s grants %d capabilities", bandKey, len(data.Permissions))
	return newPermissionSet(data.Permissions), nil
}

// requireCapability enforces a capability locally, before any request.
func (c *Client) requireCapability(ctx context.Context, b *Band, capability string) error {
	perms, err := c.Permissions(ctx, b)
	if err != nil {
		return err
	}
	if !perms.Has(capability) {
		return &PermissionError{BandKey: b.Key, Capability: capability}
	}
	return nil
}

// mayDelete enforces the deletion rule: the acting identity must be the
// resource's author, or the band must grant contents_deletion.
func (c *Client) mayDelete(ctx context.Context, b *Band, author Author) error {
	perms, err := c.Permissions(ctx, b)
	if err != nil {
		return err
	}
	if perms.Has(CapContentsDeletion) {
		return nil
	}

	me, err := c.Profile(ctx, b.Key)
	if err != nil {
		return err
	}
	if me.UserKey != "" && me.UserKey == author.UserKey {
		return nil
	}
	return &PermissionError{BandKey: b.Key, Capability: CapContentsDeletion}
}
