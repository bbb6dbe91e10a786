package rigidbody

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/lbt-cnrs/biospring/units"
	"github.com/lbt-cnrs/biospring/vector"
)

// boltzmannKJPerMolK is Boltzmann's constant expressed in the engine's
// energy unit (kJ/mol) per kelvin, so Metropolis acceptance can compare
// directly against the force field's energy outputs.
const boltzmannKJPerMolK = units.BoltzmannJPerK * units.AvogadroNumber * units.JouleToKJoule

// savedState lets a rejected Monte-Carlo proposal restore a body exactly.
type savedState struct {
	reference   vector.Vector3
	orientation quat.Number
}

// MonteCarloSampler proposes random rigid moves for a body and accepts or
// rejects them by the Metropolis criterion, replacing the body's normal
// force-integration step while sampling is active.
type MonteCarloSampler struct {
	translationNorm float32
	rotationNorm    float32
	temperature     float32

	angle     distuv.Uniform
	direction distuv.Normal
	uniform01 distuv.Uniform
}

// NewMonteCarloSampler builds a sampler proposing translations of fixed
// magnitude translationNorm and rotations about a random axis by an angle
// drawn uniformly from [0, rotationNorm) radians, accepted at the given temperature (kelvin), drawing from the
// given seed.
func NewMonteCarloSampler(translationNorm, rotationNorm, temperature float32, seed uint64) *MonteCarloSampler {
	src := rand.NewSource(seed)
	return &MonteCarloSampler{
		translationNorm: translationNorm,
		rotationNorm:    rotationNorm,
		temperature:     temperature,
		angle:           distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src},
		direction:       distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		uniform01:       distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// randomUnitVector draws a uniformly distributed direction on the unit
// sphere via three independent normal draws, normalized.
func (s *MonteCarloSampler) randomUnitVector() vector.Vector3 {
	v := vector.New(float32(s.direction.Rand()), float32(s.direction.Rand()), float32(s.direction.Rand()))
	return vector.Normalize(v)
}

// Propose applies one random rigid move to body, returning the state
// needed to undo it if the move is rejected.
func (s *MonteCarloSampler) Propose(body *Body) savedState {
	saved := savedState{reference: body.Reference(), orientation: body.Orientation()}

	translation := s.randomUnitVector().Mul(s.translationNorm)
	body.Translate(translation)

	axis := s.randomUnitVector()
	angle := float32(s.angle.Rand())
	body.Rotate(axis, angle*s.rotationNorm/float32(2*math.Pi))

	return saved
}

// Reject restores body to the state saved by the Propose call it corresponds to.
func (s *MonteCarloSampler) Reject(body *Body, saved savedState) {
	body.SetReference(saved.reference)
	body.SetOrientation(saved.orientation)
}

// Accept reports whether a proposal with the given energy change should be
// kept, per the Metropolis criterion min(1, exp(-deltaE/(kB*T))).
func (s *MonteCarloSampler) Accept(deltaEnergy float32) bool {
	if deltaEnergy <= 0 {
		return true
	}
	probability := math.Exp(-float64(deltaEnergy) / float64(boltzmannKJPerMolK*s.temperature))
	return s.uniform01.Rand() < probability
}
