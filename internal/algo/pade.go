package algo

import (
	"fmt"
	"math"

	"github.com/born-ml/linalg/internal/matrix"
)

// Largest 1-norm for which the Padé approximant of each degree is accurate
// to double precision without scaling.
const (
	theta3  = 1.495585217958292e-2
	theta5  = 2.539398330063230e-1
	theta7  = 9.504178996162932e-1
	theta9  = 2.097847961257068e0
	theta13 = 5.371920351148152
)

var (
	pade3  = []float64{120, 60, 12, 1}
	pade5  = []float64{30240, 15120, 3360, 420, 30, 1}
	pade7  = []float64{17297280, 8648640, 1995840, 277200, 25200, 1512, 56, 1}
	pade9  = []float64{17643225600, 8821612800, 2075673600, 302702400, 30270240, 2162160, 110880, 3960, 90, 1}
	pade13 = []float64{
		64764752532480000, 32382376266240000, 7771770303897600, 1187353796428800,
		129060195264000, 10559470521600, 670442572800, 33522128640, 1323241920,
		40840800, 960960, 16380, 182, 1,
	}
)

// PadeCoefficients returns a copy of the coefficients b_0..b_d of the
// degree-d approximant. d must be 3, 5, 7, 9 or 13.
func PadeCoefficients(degree int) ([]float64, error) {
	var b []float64
	switch degree {
	case 3:
		b = pade3
	case 5:
		b = pade5
	case 7:
		b = pade7
	case 9:
		b = pade9
	case 13:
		b = pade13
	default:
		return nil, fmt.Errorf("%w: %d", ErrDegree, degree)
	}
	return append([]float64(nil), b...), nil
}

// PadeDegree selects the approximant degree for a matrix with the given
// 1-norm and the number of squarings needed afterwards. Only degree 13
// scales: s = max(0, ceil(log2(norm/θ13))).
func PadeDegree(norm float64) (degree, squarings int) {
	switch {
	case norm < theta3:
		return 3, 0
	case norm < theta5:
		return 5, 0
	case norm < theta7:
		return 7, 0
	case norm < theta9:
		return 9, 0
	}
	s := math.Ceil(math.Log2(norm / theta13))
	if s < 0 || math.IsNaN(s) {
		s = 0
	}
	return 13, int(s)
}

// Pade returns the odd and even parts U and V of the degree-d approximant
// of exp(a), so that exp(a) ≈ (V-U)⁻¹(V+U). a is used as given; scaling is
// the caller's job.
func Pade(a matrix.Matrix, degree int) (u, v matrix.Matrix, err error) {
	b, err := PadeCoefficients(degree)
	if err != nil {
		return nil, nil, err
	}
	if err := matrix.CheckSquare("Pade", a); err != nil {
		return nil, nil, err
	}
	eye, err := a.Backend().Eye(a.Rows())
	if err != nil {
		return nil, nil, err
	}
	if degree == 13 {
		return pade13UV(a, eye, b)
	}
	return padeLowUV(a, eye, b)
}

// padeLowUV evaluates degrees 3 to 9:
// U = A·Σ b_{2k+1}·A^{2k}, V = Σ b_{2k}·A^{2k}.
func padeLowUV(a, eye matrix.Matrix, b []float64) (u, v matrix.Matrix, err error) {
	a2, err := a.Mul(a)
	if err != nil {
		return nil, nil, err
	}

	odd := eye.Scale(b[1])
	even := eye.Scale(b[0])
	pow := eye
	for k := 2; k < len(b); k += 2 {
		if pow, err = pow.Mul(a2); err != nil {
			return nil, nil, err
		}
		if even, err = even.Add(pow.Scale(b[k])); err != nil {
			return nil, nil, err
		}
		if odd, err = odd.Add(pow.Scale(b[k+1])); err != nil {
			return nil, nil, err
		}
	}
	if u, err = a.Mul(odd); err != nil {
		return nil, nil, err
	}
	return u, even, nil
}

// pade13UV evaluates degree 13 with six matrix products:
// U = A·(A6·(b13·A6 + b11·A4 + b9·A2) + b7·A6 + b5·A4 + b3·A2 + b1·I),
// V = A6·(b12·A6 + b10·A4 + b8·A2) + b6·A6 + b4·A4 + b2·A2 + b0·I.
func pade13UV(a, eye matrix.Matrix, b []float64) (u, v matrix.Matrix, err error) {
	a2, err := a.Mul(a)
	if err != nil {
		return nil, nil, err
	}
	a4, err := a2.Mul(a2)
	if err != nil {
		return nil, nil, err
	}
	a6, err := a4.Mul(a2)
	if err != nil {
		return nil, nil, err
	}
	powers := []matrix.Matrix{eye, a2, a4, a6}

	// combo returns Σ c_i·powers[i], skipping zero coefficients.
	combo := func(c ...float64) (matrix.Matrix, error) {
		var acc matrix.Matrix
		for i, ci := range c {
			if ci == 0 {
				continue
			}
			term := powers[i].Scale(ci)
			if acc == nil {
				acc = term
				continue
			}
			var err error
			if acc, err = acc.Add(term); err != nil {
				return nil, err
			}
		}
		return acc, nil
	}

	innerU, err := combo(0, b[9], b[11], b[13])
	if err != nil {
		return nil, nil, err
	}
	outerU, err := combo(b[1], b[3], b[5], b[7])
	if err != nil {
		return nil, nil, err
	}
	if innerU, err = a6.Mul(innerU); err != nil {
		return nil, nil, err
	}
	if outerU, err = innerU.Add(outerU); err != nil {
		return nil, nil, err
	}
	if u, err = a.Mul(outerU); err != nil {
		return nil, nil, err
	}

	innerV, err := combo(0, b[8], b[10], b[12])
	if err != nil {
		return nil, nil, err
	}
	outerV, err := combo(b[0], b[2], b[4], b[6])
	if err != nil {
		return nil, nil, err
	}
	if innerV, err = a6.Mul(innerV); err != nil {
		return nil, nil, err
	}
	if v, err = innerV.Add(outerV); err != nil {
		return nil, nil, err
	}
	return u, v, nil
}
