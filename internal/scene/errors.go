package scene

import "errors"

var (
	ErrNilNode     = errors.New("scene: nil node")
	ErrHasParent   = errors.New("scene: node already has a parent")
	ErrCycle       = errors.New("scene: attaching node would create a cycle")
	ErrNilMesh     = errors.New("scene: nil mesh")
	ErrNilLight    = errors.New("scene: nil light")
	ErrNilCamera   = errors.New("scene: nil camera")
	ErrNilMaterial = errors.New("scene: nil material")
	ErrDuplicate   = errors.New("scene: already registered")
)
