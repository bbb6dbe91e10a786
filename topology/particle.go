package topology

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/lbt-cnrs/biospring/bioerr"
	"github.com/lbt-cnrs/biospring/vector"
)

// logger is the package-level structured logger used for non-fatal
// warnings (mass coercion). Override with SetLogger.
var logger = slog.Default()

// SetLogger overrides the package-level logger used for non-fatal
// warnings raised by this package.
func SetLogger(l *slog.Logger) { logger = l }

// ParticleID is the particle unique-id type: a monotonically increasing
// counter, never reused even after a particle is removed. It is the
// engine's own identity, kept separate from ark's recyclable entity
// handles so that a particle's identity survives independently of the
// ECS's internal bookkeeping.
type ParticleID uint64

// ParticleCollection owns every particle in a system: their ECS-backed
// components and the uid -> entity lookup connecting the engine's stable
// identity to ark's recyclable entity handle.
type ParticleCollection struct {
	world *ecs.World

	mapper ecs.Map6[Position, Velocity, Dynamics, Physical, Impala, Metadata]
	filter ecs.Filter6[Position, Velocity, Dynamics, Physical, Impala, Metadata]

	posMap      ecs.Map1[Position]
	velMap      ecs.Map1[Velocity]
	dynMap      ecs.Map1[Dynamics]
	physicalMap ecs.Map1[Physical]
	impalaMap   ecs.Map1[Impala]
	metaMap     ecs.Map1[Metadata]

	nextUID  ParticleID
	entities map[ParticleID]ecs.Entity
	uids     map[ecs.Entity]ParticleID
}

// NewParticleCollection builds an empty particle collection backed by a
// fresh ECS world.
func NewParticleCollection() *ParticleCollection {
	world := ecs.NewWorld()
	return &ParticleCollection{
		world:       &world,
		mapper:      ecs.NewMap6[Position, Velocity, Dynamics, Physical, Impala, Metadata](&world),
		filter:      *ecs.NewFilter6[Position, Velocity, Dynamics, Physical, Impala, Metadata](&world),
		posMap:      ecs.NewMap1[Position](&world),
		velMap:      ecs.NewMap1[Velocity](&world),
		dynMap:      ecs.NewMap1[Dynamics](&world),
		physicalMap: ecs.NewMap1[Physical](&world),
		impalaMap:   ecs.NewMap1[Impala](&world),
		metaMap:     ecs.NewMap1[Metadata](&world),
		entities:    make(map[ParticleID]ecs.Entity),
		uids:        make(map[ecs.Entity]ParticleID),
	}
}

// Add inserts a new particle with the given initial component values,
// assigns it the next unique id, and returns that id. Ids are never
// reused, even once a particle is removed. A non-positive mass is
// coerced to 1, with a logged warning, since mass is required strictly
// positive.
func (c *ParticleCollection) Add(pos Position, vel Velocity, physical Physical, impala Impala, meta Metadata) ParticleID {
	if physical.Mass <= 0 {
		logger.Warn("zero or negative particle mass coerced to 1",
			slog.Group("particle", "stage", "add", "uid", c.nextUID, "mass", physical.Mass))
		physical.Mass = 1
	}

	uid := c.nextUID
	c.nextUID++

	entity := c.mapper.NewEntity(&pos, &vel, &Dynamics{}, &physical, &impala, &meta)
	c.entities[uid] = entity
	c.uids[entity] = uid
	return uid
}

// Remove deletes the particle with the given id. The id is never reused.
func (c *ParticleCollection) Remove(id ParticleID) error {
	entity, ok := c.entities[id]
	if !ok {
		return bioerr.New(bioerr.KindInputFormat, "particle %d does not exist", id)
	}
	c.world.RemoveEntity(entity)
	delete(c.entities, id)
	delete(c.uids, entity)
	return nil
}

// Len returns the number of particles currently in the collection.
func (c *ParticleCollection) Len() int { return len(c.entities) }

// Has reports whether a particle with the given id exists.
func (c *ParticleCollection) Has(id ParticleID) bool {
	_, ok := c.entities[id]
	return ok
}

func (c *ParticleCollection) entity(id ParticleID) (ecs.Entity, error) {
	entity, ok := c.entities[id]
	if !ok || !c.world.Alive(entity) {
		return ecs.Entity{}, bioerr.New(bioerr.KindInputFormat, "particle %d does not exist", id)
	}
	return entity, nil
}

// Position returns a pointer to the particle's current position component.
func (c *ParticleCollection) Position(id ParticleID) (*Position, error) {
	e, err := c.entity(id)
	if err != nil {
		return nil, err
	}
	return c.posMap.Get(e), nil
}

// Velocity returns a pointer to the particle's current velocity component.
func (c *ParticleCollection) Velocity(id ParticleID) (*Velocity, error) {
	e, err := c.entity(id)
	if err != nil {
		return nil, err
	}
	return c.velMap.Get(e), nil
}

// Dynamics returns a pointer to the particle's force-accumulator state.
func (c *ParticleCollection) Dynamics(id ParticleID) (*Dynamics, error) {
	e, err := c.entity(id)
	if err != nil {
		return nil, err
	}
	return c.dynMap.Get(e), nil
}

// Physical returns a pointer to the particle's force-field parameters.
func (c *ParticleCollection) Physical(id ParticleID) (*Physical, error) {
	e, err := c.entity(id)
	if err != nil {
		return nil, err
	}
	return c.physicalMap.Get(e), nil
}

// Impala returns a pointer to the particle's IMPALA parameters.
func (c *ParticleCollection) Impala(id ParticleID) (*Impala, error) {
	e, err := c.entity(id)
	if err != nil {
		return nil, err
	}
	return c.impalaMap.Get(e), nil
}

// Metadata returns a pointer to the particle's descriptive metadata.
func (c *ParticleCollection) Metadata(id ParticleID) (*Metadata, error) {
	e, err := c.entity(id)
	if err != nil {
		return nil, err
	}
	return c.metaMap.Get(e), nil
}

// ParticleView is a snapshot of one particle's full state, returned while
// iterating the collection.
type ParticleView struct {
	ID       ParticleID
	Position *Position
	Velocity *Velocity
	Dynamics *Dynamics
	Physical *Physical
	Impala   *Impala
	Metadata *Metadata
}

// X implements vector.Locatable so particle views can be used directly with
// the generic distance/centroid/neighbor-search helpers.
func (v ParticleView) X() float32 { return v.Position.Vec[0] }

// Y implements vector.Locatable.
func (v ParticleView) Y() float32 { return v.Position.Vec[1] }

// Z implements vector.Locatable.
func (v ParticleView) Z() float32 { return v.Position.Vec[2] }

// Each calls fn for every particle currently in the collection.
func (c *ParticleCollection) Each(fn func(ParticleView)) {
	query := c.filter.Query()
	for query.Next() {
		pos, vel, dyn, physical, impala, meta := query.Get()
		entity := query.Entity()
		fn(ParticleView{
			ID:       c.uids[entity],
			Position: pos,
			Velocity: vel,
			Dynamics: dyn,
			Physical: physical,
			Impala:   impala,
			Metadata: meta,
		})
	}
}

// Positions returns the current position of every particle, as
// vector.Vector3 values indexed by particle id order of iteration; the
// companion slice of ids records which particle each position belongs to.
func (c *ParticleCollection) Positions() ([]ParticleID, []vector.Vector3) {
	ids := make([]ParticleID, 0, c.Len())
	positions := make([]vector.Vector3, 0, c.Len())
	c.Each(func(v ParticleView) {
		ids = append(ids, v.ID)
		positions = append(positions, v.Position.Vec)
	})
	return ids, positions
}
