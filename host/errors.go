package host

import "github.com/pkg/errors"

// UploadFailed is returned when the pallet's upload primitive rejects a code blob.
var UploadFailed = errors.New("host: contract code upload failed")

// InstantiationFailed is returned when the pallet's bare-instantiate primitive returns a dispatch error;
// this is typically a user configuration mistake (bad constructor payload or selector).
var InstantiationFailed = errors.New("host: contract instantiation failed")

// InstantiationSilentFailure is returned when instantiation reports success but the resulting address is
// absent from the pallet's contract-info map.
var InstantiationSilentFailure = errors.New("host: instantiated contract missing from contract-info map")

// ContractTrapped is the sentinel wrapped by a FullResponse.CallError when a call ends in a contract-level
// trap rather than succeeding or failing for a dispatch-level reason.
var ContractTrapped = errors.New("host: contract call trapped")

func isTrapError(err error) bool {
	return errors.Is(err, ContractTrapped)
}
