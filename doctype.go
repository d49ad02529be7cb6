package dom

// DocumentType is a Node known to be a DocumentTypeNode.
type DocumentType Node

func (d *DocumentType) n() *Node      { return (*Node)(d) }
func (d *DocumentType) AsNode() *Node { return (*Node)(d) }

// Name returns the doctype's name (e.g. "html").
func (d *DocumentType) Name() string { return d.n().doctype.name }

// PublicID returns the doctype's public identifier, possibly "".
func (d *DocumentType) PublicID() string { return d.n().doctype.publicID }

// SystemID returns the doctype's system identifier, possibly "".
func (d *DocumentType) SystemID() string { return d.n().doctype.systemID }
