package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/vertexcodec/internal/config"
	"github.com/Faultbox/vertexcodec/internal/logger"
	"github.com/Faultbox/vertexcodec/pkg/formats"
	"github.com/Faultbox/vertexcodec/pkg/math"
)

// normalEpsilon is the tolerance used when reporting non-unit normals.
const normalEpsilon = 0.01

func cmdLayouts(cfg *config.Config, out io.Writer) error {
	for _, name := range cfg.LayoutNames() {
		elements, err := cfg.Layout(name)
		if err != nil {
			return err
		}
		stride, err := formats.MGEOStride(elements)
		if err != nil {
			return fmt.Errorf("layout %q: %w", name, err)
		}
		parts := make([]string, len(elements))
		for i, e := range elements {
			parts[i] = e.String()
		}
		fmt.Fprintf(out, "%-12s %3d B  %s\n", name, stride, strings.Join(parts, ", "))
	}
	return nil
}

func cmdClassify(cfg *config.Config, out io.Writer) error {
	for _, name := range cfg.MaterialNames() {
		mat, err := cfg.Material(name)
		if err != nil {
			return err
		}

		vt := formats.SelectNVRVertexType(mat)
		ground := "no"
		isGround, err := formats.IsGroundMaterial(mat)
		switch {
		case err != nil:
			logger.Warn("cannot classify ground", zap.String("material", name), zap.Error(err))
			ground = "error"
		case isGround:
			ground = "yes"
		}

		fmt.Fprintf(out, "%-16s type=%-11s vertex=%-2s size=%2d ground=%s\n",
			name, mat.Type, vt, vt.Size(), ground)
	}
	return nil
}

// loadMGEO reads and decodes a whole map geometry stream file.
func loadMGEO(cfg *config.Config, layoutName, path string) ([]formats.MGEOVertex, int, error) {
	elements, err := cfg.Layout(layoutName)
	if err != nil {
		return nil, 0, err
	}
	stride, err := formats.MGEOStride(elements)
	if err != nil {
		return nil, 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, err
	}

	vertices, err := formats.ParseMGEOVertices(data, elements)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	log := logger.With(zap.String("file", path), zap.String("layout", layoutName))
	log.Debug("decoded map geometry stream", zap.Int("stride", stride), zap.Int("count", len(vertices)))

	badNormals, nonFinite := 0, 0
	for _, v := range vertices {
		if v.Normal != nil && !v.Normal.IsUnit(normalEpsilon) {
			badNormals++
		}
		if !mgeoFinite(v) {
			nonFinite++
		}
	}
	if badNormals > 0 {
		log.Warn("non-unit normals", zap.Int("count", badNormals))
	}
	if nonFinite > 0 {
		log.Warn("non-finite vertices", zap.Int("count", nonFinite))
	}

	return vertices, stride, nil
}

func cmdDecodeMap(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("decode-map", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Print at most N vertices (0 = all)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: vtxtool decode-map [-n N] <layout> <file>", errUsage)
	}

	vertices, stride, err := loadMGEO(cfg, fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	nonFinite := 0
	for i, v := range vertices {
		if !mgeoFinite(v) {
			nonFinite++
		}
		if *limit > 0 && i >= *limit {
			continue
		}
		fmt.Fprintf(out, "%6d %s\n", i, describeMGEO(v))
	}

	fmt.Fprintf(out, "\n%d vertices, stride %d B\n", len(vertices), stride)
	if nonFinite > 0 {
		fmt.Fprintf(out, "%d vertices with NaN or infinite components\n", nonFinite)
	}
	return nil
}

// mgeoFinite reports whether every present float field is finite.
func mgeoFinite(v formats.MGEOVertex) bool {
	switch {
	case v.Position != nil && !v.Position.IsFinite():
		return false
	case v.Normal != nil && !v.Normal.IsFinite():
		return false
	case v.DiffuseUV != nil && !v.DiffuseUV.IsFinite():
		return false
	case v.LightmapUV != nil && !v.LightmapUV.IsFinite():
		return false
	}
	return true
}

func describeMGEO(v formats.MGEOVertex) string {
	var parts []string
	if v.Position != nil {
		parts = append(parts, "pos="+v.Position.String())
	}
	if v.Normal != nil {
		parts = append(parts, "normal="+v.Normal.String())
	}
	if v.DiffuseUV != nil {
		parts = append(parts, "uv="+v.DiffuseUV.String())
	}
	if v.LightmapUV != nil {
		parts = append(parts, "lightmap="+v.LightmapUV.String())
	}
	if v.SecondaryColor != nil {
		parts = append(parts, "color2="+v.SecondaryColor.String())
	}
	return strings.Join(parts, " ")
}

func cmdEncodeMap(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("encode-map", flag.ContinueOnError)
	normalize := fs.Bool("normalize", false, "Rescale normals to unit length")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() < 3 {
		return fmt.Errorf("%w: vtxtool encode-map [-normalize] <layout> <in> <out>", errUsage)
	}
	args = fs.Args()

	vertices, stride, err := loadMGEO(cfg, args[0], args[1])
	if err != nil {
		return err
	}

	fixed := 0
	if *normalize {
		for i := range vertices {
			if n := vertices[i].Normal; n != nil && !n.IsUnit(normalEpsilon) {
				unit := n.Normalize()
				vertices[i].Normal = &unit
				fixed++
			}
		}
		logger.Info("normalized normals", zap.String("file", args[1]), zap.Int("count", fixed))
	}

	buf := new(bytes.Buffer)
	if err := formats.WriteMGEOVertices(buf, vertices, stride); err != nil {
		return err
	}
	if err := os.WriteFile(args[2], buf.Bytes(), 0644); err != nil {
		return err
	}

	original, err := os.ReadFile(args[1])
	if err != nil {
		return err
	}
	status := "identical"
	switch {
	case bytes.Equal(original, buf.Bytes()):
	case fixed > 0:
		status = "normalized"
	default:
		// Encoding is canonical-order, so non-canonical layouts come back reordered.
		status = "reordered"
	}

	fmt.Fprintf(out, "Wrote %s (%d vertices, %d bytes, %s)\n", args[2], len(vertices), buf.Len(), status)
	return nil
}

func cmdMerge(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) < 5 {
		return fmt.Errorf("%w: vtxtool merge <layoutA> <fileA> <layoutB> <fileB> <out>", errUsage)
	}

	a, _, err := loadMGEO(cfg, args[0], args[1])
	if err != nil {
		return err
	}
	b, _, err := loadMGEO(cfg, args[2], args[3])
	if err != nil {
		return err
	}

	merged, err := formats.CombineMGEOStreams(a, b)
	if err != nil {
		return err
	}

	stride := 0
	if len(merged) > 0 {
		stride = merged[0].Size()
	}

	buf := new(bytes.Buffer)
	if err := formats.WriteMGEOVertices(buf, merged, stride); err != nil {
		return err
	}
	if err := os.WriteFile(args[4], buf.Bytes(), 0644); err != nil {
		return err
	}

	logger.Info("merged streams",
		zap.String("a", args[1]),
		zap.String("b", args[3]),
		zap.Int("count", len(merged)),
		zap.Int("stride", stride))
	fmt.Fprintf(out, "Wrote %s (%d vertices, stride %d B)\n", args[4], len(merged), stride)
	return nil
}

func cmdDecodeNVR(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("decode-nvr", flag.ContinueOnError)
	limit := fs.Int("n", 0, "Print at most N vertices (0 = all)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("%w: vtxtool decode-nvr [-n N] <material> <file>", errUsage)
	}

	mat, err := cfg.Material(fs.Arg(0))
	if err != nil {
		return err
	}
	vt := formats.SelectNVRVertexType(mat)

	data, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	if len(data)%vt.Size() != 0 {
		return fmt.Errorf("%s: %d bytes is not a multiple of vertex type %s (%d B)", fs.Arg(1), len(data), vt, vt.Size())
	}

	vertices, err := formats.ReadNVRVertices(bytes.NewReader(data), vt, len(data)/vt.Size())
	if err != nil {
		return fmt.Errorf("decoding %s: %w", fs.Arg(1), err)
	}

	log := logger.With(zap.String("file", fs.Arg(1)), zap.String("material", mat.Name))
	log.Debug("decoded world render stream", zap.Stringer("vertex_type", vt), zap.Int("count", len(vertices)))

	// Bounds cover finite vertices only.
	var lo, hi math.Vec3
	nonFinite := 0
	for i, v := range vertices {
		p := formats.NVRVertexPosition(v)
		switch {
		case !nvrFinite(v):
			nonFinite++
		case nonFinite == i:
			lo, hi = p, p
		default:
			lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
			hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
		}
		if *limit > 0 && i >= *limit {
			continue
		}
		fmt.Fprintf(out, "%6d %s\n", i, describeNVR(v))
	}

	fmt.Fprintf(out, "\n%d vertices, type %s, %d B each\n", len(vertices), vt, vt.Size())
	if len(vertices) > nonFinite {
		fmt.Fprintf(out, "bounds %s - %s\n", lo, hi)
	}
	if nonFinite > 0 {
		log.Warn("non-finite vertices", zap.Int("count", nonFinite))
		fmt.Fprintf(out, "%d vertices with NaN or infinite components\n", nonFinite)
	}
	return nil
}

// nvrFinite reports whether every float field of v is finite.
func nvrFinite(v formats.NVRVertex) bool {
	switch v := v.(type) {
	case formats.NVRBaseVertex:
		return v.Position.IsFinite()
	case formats.NVRVertex4:
		return v.Position.IsFinite() && v.Normal.IsFinite() && v.UV.IsFinite()
	case formats.NVRVertex8:
		return v.Position.IsFinite() && v.Normal.IsFinite() && v.UV.IsFinite()
	case formats.NVRVertex12:
		return v.Position.IsFinite() && v.Normal.IsFinite() && v.Unknown.IsFinite() && v.UV.IsFinite()
	default:
		return false
	}
}

func describeNVR(v formats.NVRVertex) string {
	switch v := v.(type) {
	case formats.NVRBaseVertex:
		return fmt.Sprintf("pos=%s", v.Position)
	case formats.NVRVertex4:
		return fmt.Sprintf("pos=%s normal=%s uv=%s diffuse=%s", v.Position, v.Normal, v.UV, v.DiffuseColor)
	case formats.NVRVertex8:
		return fmt.Sprintf("pos=%s normal=%s uv=%s diffuse=%s emissive=%s", v.Position, v.Normal, v.UV, v.DiffuseColor, v.EmissiveColor)
	case formats.NVRVertex12:
		return fmt.Sprintf("pos=%s normal=%s unknown=%s uv=%s diffuse=%s", v.Position, v.Normal, v.Unknown, v.UV, v.DiffuseColor)
	default:
		return "?"
	}
}

func cmdInitConfig(cfg *config.Config, args []string, out io.Writer) error {
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", args[0])
		return nil
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", filepath.Join(config.ConfigDir(), "vtxtool.yaml"))
	return nil
}
