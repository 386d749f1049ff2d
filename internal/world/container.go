package world

// Property indices for the per-body resolution cache.
const (
	propGravity = iota
	propFriction
	propRestitution
	numProps
)

// Container is one level of the physics-defaults ownership chain. Each
// default is nullable: nil means "inherit from the parent". A World is
// always a valid chain root because all of its defaults are concrete.
//
// Containers and collidable bodies are separate facets: a Group that should
// itself collide carries a Body by composition, it does not extend one.
type Container interface {
	Parent() Container
	GravityDefault() *float64
	FrictionDefault() *float64
	RestitutionDefault() *float64
}

// Group is an intermediate container: it may define some defaults and
// inherit the rest, and may optionally expose a collidable self body.
type Group struct {
	parent Container

	Gravity     *float64
	Friction    *float64
	Restitution *float64

	self *Body
}

func NewGroup(parent Container) *Group {
	return &Group{parent: parent}
}

func (g *Group) Parent() Container            { return g.parent }
func (g *Group) GravityDefault() *float64     { return g.Gravity }
func (g *Group) FrictionDefault() *float64    { return g.Friction }
func (g *Group) RestitutionDefault() *float64 { return g.Restitution }

// SetSelfBody attaches the group's collidable facet. The body must still be
// registered with the world to participate in simulation.
func (g *Group) SetSelfBody(b *Body) { g.self = b }

// SelfBody returns the group's collidable facet, or nil.
func (g *Group) SelfBody() *Body { return g.self }

// SetContainer reparents the body and invalidates its resolution cache.
func (b *Body) SetContainer(c Container) {
	b.container = c
	for i := range b.propCache {
		b.propCache[i] = nil
	}
}

func (b *Body) ContainerRef() Container { return b.container }

// resolveContainer walks the ownership chain to the nearest container
// defining the property and caches it. The walk is O(depth) once, O(1)
// after. Returns nil when no container in the chain defines the property.
func (b *Body) resolveContainer(prop int) Container {
	if c := b.propCache[prop]; c != nil {
		return c
	}
	for c := b.container; c != nil; c = c.Parent() {
		var v *float64
		switch prop {
		case propGravity:
			v = c.GravityDefault()
		case propFriction:
			v = c.FrictionDefault()
		case propRestitution:
			v = c.RestitutionDefault()
		}
		if v != nil {
			b.propCache[prop] = c
			return c
		}
	}
	return nil
}

// EffectiveGravity resolves the body's gravity: own override, else the
// nearest defining container, else the package default.
func (b *Body) EffectiveGravity() float64 {
	if b.Gravity != nil {
		return *b.Gravity
	}
	if c := b.resolveContainer(propGravity); c != nil {
		return *c.GravityDefault()
	}
	return defaultGravity
}

func (b *Body) EffectiveFriction() float64 {
	if b.Friction != nil {
		return *b.Friction
	}
	if c := b.resolveContainer(propFriction); c != nil {
		return *c.FrictionDefault()
	}
	return defaultFriction
}

func (b *Body) EffectiveRestitution() float64 {
	if b.Restitution != nil {
		return *b.Restitution
	}
	if c := b.resolveContainer(propRestitution); c != nil {
		return *c.RestitutionDefault()
	}
	return defaultRestitution
}

// Float is a convenience for building nullable override values.
func Float(v float64) *float64 { return &v }
