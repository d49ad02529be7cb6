package dom

import "errors"

// Sentinel errors for conditions that are always programmer errors
// rather than standards-defined exceptional outcomes, in the teacher's
// own idiom (interface.go's ErrNilNode / ErrInvalidOperation /
// ErrDuplicateAttribute).
var (
	ErrNilNode            = errors.New("dom: nil node")
	ErrInvalidOperation   = errors.New("dom: operation cannot be performed")
	ErrDuplicateAttribute = errors.New("dom: duplicate attribute")
)

// ErrUnimplemented reports that target names a feature this engine does
// not (yet) implement.
type ErrUnimplemented struct {
	target string
}

func (e *ErrUnimplemented) Error() string {
	return "dom: unimplemented: " + e.target
}

// Name constants for the DOMError taxonomy of spec.md §6.
const (
	HierarchyRequestError = "HierarchyRequestError"
	NotFoundError         = "NotFoundError"
	WrongDocumentError    = "WrongDocumentError"
	NotSupportedError     = "NotSupportedError"
	InvalidStateError     = "InvalidStateError"
	InvalidNodeTypeError  = "InvalidNodeTypeError"
	InvalidCharacterError = "InvalidCharacterError"
	NamespaceError        = "NamespaceError"
	IndexSizeError        = "IndexSizeError"
	IndexOutOfBounds      = "IndexOutOfBounds"
	OutOfMemory           = "OutOfMemory"
	SyntaxError           = "SyntaxError"
)

// DOMError is the discriminated error value the DOM operations in this
// package return, per spec.md §7: validity errors are always recoverable
// and leave the tree untouched. TreeBuilder's end-tag and placement
// checks return plain errors instead.
type DOMError struct {
	Name    string
	Message string
}

func (e *DOMError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// Is makes errors.Is(err, target) true when target is a *DOMError with
// the same Name, independent of Message, so callers can match on error
// class without string comparison.
func (e *DOMError) Is(target error) bool {
	other, ok := target.(*DOMError)
	if !ok {
		return false
	}
	return e.Name == other.Name
}

func newErr(name, msg string) *DOMError { return &DOMError{Name: name, Message: msg} }

func errHierarchyRequest(msg string) *DOMError { return newErr(HierarchyRequestError, msg) }
func errNotFound(msg string) *DOMError         { return newErr(NotFoundError, msg) }
func errWrongDocument(msg string) *DOMError    { return newErr(WrongDocumentError, msg) }
func errNotSupported(msg string) *DOMError     { return newErr(NotSupportedError, msg) }
func errInvalidState(msg string) *DOMError     { return newErr(InvalidStateError, msg) }
func errInvalidNodeType(msg string) *DOMError  { return newErr(InvalidNodeTypeError, msg) }
func errInvalidCharacter(msg string) *DOMError { return newErr(InvalidCharacterError, msg) }
func errNamespace(msg string) *DOMError        { return newErr(NamespaceError, msg) }
func errIndexSize(msg string) *DOMError        { return newErr(IndexSizeError, msg) }
func errIndexOutOfBounds(msg string) *DOMError { return newErr(IndexOutOfBounds, msg) }
func errSyntax(msg string) *DOMError           { return newErr(SyntaxError, msg) }

// Exported constructors, for sibling packages (selector, domrange) that
// need to report errors from this package's taxonomy without reaching
// into its unexported helpers.

// ErrIndexSize reports an offset or count outside a container's valid
// range.
func ErrIndexSize(msg string) error { return errIndexSize(msg) }

// ErrInvalidNodeType reports an operation attempted against a node kind
// that does not support it.
func ErrInvalidNodeType(msg string) error { return errInvalidNodeType(msg) }

// ErrNotSupported reports an operation this engine deliberately does not
// implement for the given arguments.
func ErrNotSupported(msg string) error { return errNotSupported(msg) }

// ErrInvalidState reports an operation attempted against a node or
// document in a state that forbids it.
func ErrInvalidState(msg string) error { return errInvalidState(msg) }
