// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package access

import "fmt"

// Reason identifies why access was denied.
type Reason int

const (
	// ReasonNoRule means no allow-list is configured.
	ReasonNoRule Reason = iota + 1
	// ReasonLookupFailed means the public address lookup failed.
	ReasonLookupFailed
	// ReasonAddressUndetectable means the lookup answered without an address.
	ReasonAddressUndetectable
	// ReasonNotAllowed means the address is not on the allow-list.
	ReasonNotAllowed
)

// String returns a short machine-friendly name.
func (r Reason) String() string {
	switch r {
	case ReasonNoRule:
		return "no_rule"
	case ReasonLookupFailed:
		return "lookup_failed"
	case ReasonAddressUndetectable:
		return "address_undetectable"
	case ReasonNotAllowed:
		return "not_allowed"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Verdict is the outcome of the access check.
// It is one of Pending, Allowed or Denied; no other implementations exist.
type Verdict interface {
	// Summary flattens the verdict for display and machine output.
	Summary() Summary
	verdict()
}

// Pending is the verdict before the check has finished.
type Pending struct{}

// Allowed grants access to the chat.
type Allowed struct {
	Address string
}

// Denied refuses access. Address is empty when it was never learned.
type Denied struct {
	Reason     Reason
	Address    string
	Diagnostic string
}

func (Pending) verdict() {}
func (Allowed) verdict() {}
func (Denied) verdict()  {}

// Summary is the flattened form of a Verdict.
type Summary struct {
	Allowed    bool   `json:"allowed"`
	Pending    bool   `json:"pending"`
	Address    string `json:"address,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Summary implements Verdict.
func (Pending) Summary() Summary {
	return Summary{Pending: true}
}

// Summary implements Verdict.
func (v Allowed) Summary() Summary {
	return Summary{Allowed: true, Address: v.Address}
}

// Summary implements Verdict.
func (v Denied) Summary() Summary {
	return Summary{
		Address:    v.Address,
		Reason:     v.Reason.String(),
		Diagnostic: v.Diagnostic,
	}
}

// IsAllowed reports whether v grants access. A nil verdict never does.
func IsAllowed(v Verdict) bool {
	_, ok := v.(Allowed)
	return ok
}

// Diagnostic messages shown on the denied screen.
const (
	DiagnosticNoRule       = "no access rule is defined; access denied"
	DiagnosticLookupFailed = "unable to retrieve your IP address; access denied"
	DiagnosticUndetectable = "unable to detect your address; access denied"
)

func deniedNoRule() Denied {
	return Denied{Reason: ReasonNoRule, Diagnostic: DiagnosticNoRule}
}

// deniedLookup carries a fixed diagnostic; the cause is only logged.
func deniedLookup() Denied {
	return Denied{Reason: ReasonLookupFailed, Diagnostic: DiagnosticLookupFailed}
}

func deniedUndetectable() Denied {
	return Denied{Reason: ReasonAddressUndetectable, Diagnostic: DiagnosticUndetectable}
}

func deniedNotAllowed(addr string) Denied {
	return Denied{
		Reason:     ReasonNotAllowed,
		Address:    addr,
		Diagnostic: fmt.Sprintf("address %s is not authorized", addr),
	}
}
