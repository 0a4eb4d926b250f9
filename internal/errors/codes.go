// Package errors provides structured error handling for registry operations.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Registry errors
	CodeNotFound        Code = "REGISTRY_NOT_FOUND"
	CodeAlreadyExists   Code = "REGISTRY_ALREADY_EXISTS"
	CodeNotOwner        Code = "REGISTRY_NOT_OWNER"
	CodeCounterOverflow Code = "REGISTRY_COUNTER_OVERFLOW"
	CodeOwnerCapacity   Code = "REGISTRY_OWNER_CAPACITY_EXCEEDED"

	// Transfer errors
	CodeTransferToSelf Code = "REGISTRY_TRANSFER_TO_SELF"

	// Marketplace errors
	CodeBuyerIsOwner Code = "REGISTRY_BUYER_IS_OWNER"
	CodeNotForSale   Code = "REGISTRY_NOT_FOR_SALE"
	CodeBidTooLow    Code = "REGISTRY_BID_TOO_LOW"

	// Breeding errors
	CodeSameSex Code = "REGISTRY_SAME_SEX"

	// Naming errors
	CodeNameTooShort Code = "REGISTRY_NAME_TOO_SHORT"
	CodeNameTooLong  Code = "REGISTRY_NAME_TOO_LONG"

	// Ledger errors
	CodeInsufficientBalance Code = "LEDGER_INSUFFICIENT_BALANCE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeTransferToSelf,
		CodeSameSex,
		CodeNameTooShort,
		CodeNameTooLong:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeCounterOverflow,
		CodeOwnerCapacity,
		CodeBuyerIsOwner,
		CodeNotForSale,
		CodeBidTooLow,
		CodeInsufficientBalance:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// AlreadyExists - content-identical record present
	case CodeAlreadyExists:
		return codes.AlreadyExists

	// PermissionDenied - caller does not hold the asset
	case CodeNotOwner:
		return codes.PermissionDenied

	default:
		return codes.Internal
	}
}
