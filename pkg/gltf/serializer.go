package gltf

import (
	"io"

	"go.uber.org/zap"
)

// Serializer packs one scene from a geometry source into a binary glTF
// container. A Serializer is single-use per Write call in the sense
// that each run owns a fresh accumulator and segment set; the source
// must not be mutated concurrently with a run.
type Serializer struct {
	source Source
	policy Policy
	log    *zap.Logger
}

// Option configures a Serializer.
type Option func(*Serializer)

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Serializer) {
		s.log = log
	}
}

// NewSerializer returns a Serializer for the given source and policy.
func NewSerializer(source Source, policy Policy, opts ...Option) *Serializer {
	s := &Serializer{
		source: source,
		policy: policy,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report summarizes a successful packing run.
type Report struct {
	Products   int
	Meshes     int
	Primitives int
	BodyBytes  int
	SceneBytes int
	Warnings   []Warning
}

// Write packs the whole scene and writes the container to w. Nothing
// is written until the scene JSON and body are complete, so a fatal
// error leaves no output. Non-fatal diagnostics are returned in the
// report of a successful run.
func (s *Serializer) Write(w io.Writer) (*Report, error) {
	s.log.Info("starting serialization", zap.String("policy", s.policy.Name))

	// Cache the product list so the sizing and packing passes see an
	// identical iteration order.
	products := s.source.Products()

	sizes, err := measureSegments(products, s.policy)
	if err != nil {
		return nil, err
	}
	if sizes.indices == 0 {
		return nil, ErrNoGeometry
	}

	ext := NewExtents()
	for _, p := range products {
		if HasEligibleGeometry(p, false) {
			ext = ext.Add(p.Geometry())
		}
	}

	model := newSceneModel(s.policy, sizes)
	if ext.Valid() {
		center := ext.Center()
		model.translation = center.Scale(-1)
	}

	pk := newPacker(s.policy, sizes, model)
	if err := pk.packAll(products); err != nil {
		return nil, err
	}

	for _, warn := range model.warnings {
		s.log.Warn(warn.Message, zap.String("product", warn.ProductID))
	}

	body := pk.body()

	var scene []byte
	switch s.policy.Container {
	case ContainerGLTF1:
		// The 1.0 container carries its shader sources in the body,
		// behind the packed segments.
		for _, sh := range legacyShaders {
			model.addShaderView(sh.name, len(body), len(sh.source))
			body = append(body, sh.source...)
		}
		model.bodyLength = len(body)
		scene, err = encodeGLTF1(model)
	default:
		model.bodyLength = len(body)
		scene, err = encodeGLTF2(model)
	}
	if err != nil {
		return nil, err
	}

	if err := writeContainer(w, s.policy.Container, scene, body); err != nil {
		return nil, err
	}

	report := &Report{
		Products:   len(model.nodes),
		Meshes:     len(model.meshes),
		BodyBytes:  len(body),
		SceneBytes: len(scene),
		Warnings:   model.warnings,
	}
	for _, me := range model.meshes {
		report.Primitives += len(me.primitives)
	}

	s.log.Info("scene packed",
		zap.Int("products", report.Products),
		zap.Int("meshes", report.Meshes),
		zap.Int("bodyBytes", report.BodyBytes),
		zap.Int("sceneBytes", report.SceneBytes),
		zap.Int("warnings", len(report.Warnings)))

	return report, nil
}

// MeasureBody runs only the sizing pass and returns the body segment
// byte lengths in order: indices, vertices, normals, colors. It is
// used for pre-flight reporting without producing output.
func (s *Serializer) MeasureBody() ([4]int, error) {
	sizes, err := measureSegments(s.source.Products(), s.policy)
	if err != nil {
		return [4]int{}, err
	}
	if sizes.indices == 0 {
		return [4]int{}, ErrNoGeometry
	}
	return [4]int{sizes.indices, sizes.vertices, sizes.normals, sizes.colors}, nil
}
