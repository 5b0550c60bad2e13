// Package access answers authorization questions for the ledger.
// It never owns ledger data: batch ownership is looked up from the batch registry.
package access

import "context"

type Role string

const (
	RoleNone        Role = "none"
	RoleAdmin       Role = "admin"
	RoleFarmer      Role = "farmer"
	RoleTransporter Role = "transporter"
	RoleWarehouse   Role = "warehouse"
	RoleDistributor Role = "distributor"
	RoleRetailer    Role = "retailer"
	RoleInspector   Role = "inspector"
)

type Capability string

const (
	CapRegisterBatch  Capability = "register_batch"
	CapRecordMovement Capability = "record_movement"
)

var roleCapabilities = map[Role][]Capability{
	RoleAdmin:       {CapRegisterBatch, CapRecordMovement},
	RoleFarmer:      {CapRegisterBatch, CapRecordMovement},
	RoleTransporter: {CapRecordMovement},
	RoleWarehouse:   {CapRecordMovement},
	RoleDistributor: {CapRecordMovement},
	RoleRetailer:    {CapRecordMovement},
	RoleInspector:   nil,
}

// Grants reports whether role r carries capability c.
func (r Role) Grants(c Capability) bool {
	for _, have := range roleCapabilities[r] {
		if have == c {
			return true
		}
	}
	return false
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

// Authorizer is the role collaborator consulted by the ledger.
type Authorizer interface {
	IsAuthorized(ctx context.Context, identity string, capability Capability) bool
	RoleOf(ctx context.Context, identity string) Role
	OwnerOf(ctx context.Context, batchID string) (string, error)
}

// OwnerLookup resolves the registrant of a batch.
type OwnerLookup interface {
	OwnerOf(ctx context.Context, batchID string) (string, error)
}

type OwnerLookupFunc func(ctx context.Context, batchID string) (string, error)

func (f OwnerLookupFunc) OwnerOf(ctx context.Context, batchID string) (string, error) {
	return f(ctx, batchID)
}

// Open authorizes every non-empty identity for every capability.
type Open struct {
	Owners OwnerLookup
}

func (o Open) IsAuthorized(_ context.Context, identity string, _ Capability) bool {
	return identity != ""
}

func (o Open) RoleOf(_ context.Context, identity string) Role {
	if identity == "" {
		return RoleNone
	}
	return RoleAdmin
}

func (o Open) OwnerOf(ctx context.Context, batchID string) (string, error) {
	if o.Owners == nil {
		return "", nil
	}
	return o.Owners.OwnerOf(ctx, batchID)
}
