// Package pose implements the 6 degree-of-freedom rigid transform used by
// frame-semantics resolution: a translation plus an orientation stored as a
// unit quaternion. Document text carries orientation as roll, pitch, yaw
// Euler angles in radians.
package pose

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: translation followed by rotation.
type Pose struct {
	X, Y, Z float64
	Rot     quat.Number
}

// Identity returns the zero translation, zero rotation pose.
func Identity() Pose {
	return Pose{Rot: quat.Number{Real: 1}}
}

// New builds a pose from a translation and roll/pitch/yaw Euler angles.
func New(x, y, z, roll, pitch, yaw float64) Pose {
	return Pose{X: x, Y: y, Z: z, Rot: fromEuler(roll, pitch, yaw)}
}

// Parse reads the six-number text form "x y z roll pitch yaw".
// Empty or whitespace-only text yields the identity pose.
func Parse(text string) (Pose, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Identity(), nil
	}
	if len(fields) != 6 {
		return Identity(), fmt.Errorf("pose needs 6 values, got %d", len(fields))
	}
	var v [6]float64
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Identity(), fmt.Errorf("pose value %q: %w", field, err)
		}
		v[i] = f
	}
	return New(v[0], v[1], v[2], v[3], v[4], v[5]), nil
}

// Mul composes two transforms: if p maps frame B into frame A and q maps
// frame C into frame B, p.Mul(q) maps frame C into frame A.
func (p Pose) Mul(q Pose) Pose {
	tx, ty, tz := rotate(p.Rot, q.X, q.Y, q.Z)
	return Pose{
		X:   p.X + tx,
		Y:   p.Y + ty,
		Z:   p.Z + tz,
		Rot: quat.Mul(p.Rot, q.Rot),
	}
}

// Inverse returns the transform mapping in the opposite direction, so that
// p.Mul(p.Inverse()) is the identity.
func (p Pose) Inverse() Pose {
	inv := quat.Conj(p.Rot)
	tx, ty, tz := rotate(inv, -p.X, -p.Y, -p.Z)
	return Pose{X: tx, Y: ty, Z: tz, Rot: inv}
}

// Euler returns the orientation as roll, pitch, yaw angles in radians.
func (p Pose) Euler() (roll, pitch, yaw float64) {
	q := p.Rot
	sinr := 2 * (q.Real*q.Imag + q.Jmag*q.Kmag)
	cosr := 1 - 2*(q.Imag*q.Imag+q.Jmag*q.Jmag)
	roll = math.Atan2(sinr, cosr)

	sinp := 2 * (q.Real*q.Jmag - q.Kmag*q.Imag)
	if math.Abs(sinp) >= 1 {
		pitch = math.Copysign(math.Pi/2, sinp)
	} else {
		pitch = math.Asin(sinp)
	}

	siny := 2 * (q.Real*q.Kmag + q.Imag*q.Jmag)
	cosy := 1 - 2*(q.Jmag*q.Jmag+q.Kmag*q.Kmag)
	yaw = math.Atan2(siny, cosy)
	return roll, pitch, yaw
}

// ApproxEqual reports whether two poses match within tol, comparing the
// rotations up to quaternion sign.
func (p Pose) ApproxEqual(q Pose, tol float64) bool {
	if math.Abs(p.X-q.X) > tol || math.Abs(p.Y-q.Y) > tol || math.Abs(p.Z-q.Z) > tol {
		return false
	}
	dot := p.Rot.Real*q.Rot.Real + p.Rot.Imag*q.Rot.Imag +
		p.Rot.Jmag*q.Rot.Jmag + p.Rot.Kmag*q.Rot.Kmag
	return math.Abs(math.Abs(dot)-1) <= tol
}

// String renders the pose back into the six-number document form.
func (p Pose) String() string {
	roll, pitch, yaw := p.Euler()
	return fmt.Sprintf("%g %g %g %g %g %g", p.X, p.Y, p.Z, roll, pitch, yaw)
}

// fromEuler builds the quaternion for intrinsic roll (x), pitch (y),
// yaw (z) rotations, composed as yaw * pitch * roll.
func fromEuler(roll, pitch, yaw float64) quat.Number {
	cr, sr := math.Cos(roll/2), math.Sin(roll/2)
	cp, sp := math.Cos(pitch/2), math.Sin(pitch/2)
	cy, sy := math.Cos(yaw/2), math.Sin(yaw/2)
	return quat.Number{
		Real: cr*cp*cy + sr*sp*sy,
		Imag: sr*cp*cy - cr*sp*sy,
		Jmag: cr*sp*cy + sr*cp*sy,
		Kmag: cr*cp*sy - sr*sp*cy,
	}
}

// rotate applies the unit quaternion q to the vector (x, y, z).
func rotate(q quat.Number, x, y, z float64) (float64, float64, float64) {
	v := quat.Number{Imag: x, Jmag: y, Kmag: z}
	r := quat.Mul(quat.Mul(q, v), quat.Conj(q))
	return r.Imag, r.Jmag, r.Kmag
}
