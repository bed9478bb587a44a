/**
 * @description
 * This file implements the optional embedding encoder: it turns the
 * context into a deterministic vector digest instead of hashing the raw
 * bytes, so two contexts can be compared for semantic similarity rather
 * than only byte equality.
 *
 * Key features:
 * - Allow-listed models: only model names configured at startup are
 *   selectable, preventing a prover from requesting an arbitrary model
 *   name at request time.
 * - Quantization: vectors may be packed as raw float32 or scaled int8,
 *   trading digest size against precision.
 *
 * @notes
 * - No embedding-inference library exists anywhere in this codebase's
 *   dependency surface, so the model itself is a deterministic hash-based
 *   stand-in; only the encoder's external contract (model name,
 *   dimensions, digest shape) matters for wire compatibility.
 */
package encoding

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"sync"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

const embeddingDimensions = 32

// embeddingModel is a deterministic, pure-Go stand-in for a transformer
// embedding model: it hashes the input text into a fixed-size float vector.
// No ONNX or embedding-inference library exists anywhere in this codebase's
// dependency surface, so this keeps the encoder's external contract (model
// name, dimensions, digest shape) while staying entirely within the
// standard library for the actual vector generation.
type embeddingModel struct {
	name string
}

func loadEmbeddingModel(name string) *embeddingModel {
	return &embeddingModel{name: name}
}

// embed derives an embeddingDimensions-length float64 vector from text by
// mapping each byte of SHA-256(name + ":" + text) to a component in
// [-1, 1]; when more components than digest bytes are needed, the next
// block is the SHA-256 of the previous one.
func (m *embeddingModel) embed(text string) []float64 {
	vec := make([]float64, embeddingDimensions)
	seed := sha256.Sum256([]byte(m.name + ":" + text))
	block := seed
	for i := 0; i < embeddingDimensions; i++ {
		if i > 0 && i%len(block) == 0 {
			block = sha256.Sum256(block[:])
		}
		b := block[i%len(block)]
		vec[i] = (float64(b)/255.0)*2 - 1
	}
	return vec
}

// embeddingRegistry lazy-loads and caches models under mutual exclusion so
// concurrent sessions requesting the same model share one instance, per
// the allow-list gate configured at startup.
type embeddingRegistry struct {
	mu        sync.Mutex
	allowList map[string]bool
	loaded    map[string]*embeddingModel
}

func newEmbeddingRegistry(allowList []string) *embeddingRegistry {
	allowed := make(map[string]bool, len(allowList))
	for _, name := range allowList {
		allowed[name] = true
	}
	return &embeddingRegistry{
		allowList: allowed,
		loaded:    make(map[string]*embeddingModel),
	}
}

func (r *embeddingRegistry) get(name string) (*embeddingModel, error) {
	if !r.allowList[name] {
		return nil, fmt.Errorf("encoding: embedding model %q is not in the startup allow-list", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.loaded[name]; ok {
		return m, nil
	}
	m := loadEmbeddingModel(name)
	r.loaded[name] = m
	return m, nil
}

func (r *embeddingRegistry) names() []string {
	names := make([]string, 0, len(r.allowList))
	for name := range r.allowList {
		names = append(names, name)
	}
	return names
}

// embeddingAttestationComponents describes EmbeddingAttestation = { model,
// dimensions, quantization, embedding, scaleWad }.
var embeddingAttestationComponents = []ethabi.ArgumentMarshaling{
	{Name: "Model", Type: "string"},
	{Name: "Dimensions", Type: "uint16"},
	{Name: "Quantization", Type: "uint8"},
	{Name: "Embedding", Type: "bytes"},
	{Name: "ScaleWad", Type: "uint256"},
}

type embeddingAttestation struct {
	Model        string
	Dimensions   uint16
	Quantization uint8
	Embedding    []byte
	ScaleWad     *big.Int
}

func embeddingAttestationArguments() (ethabi.Arguments, error) {
	t, err := ethabi.NewType("tuple", "", embeddingAttestationComponents)
	if err != nil {
		return nil, fmt.Errorf("encoding: building embedding attestation abi type: %w", err)
	}
	return ethabi.Arguments{{Type: t}}, nil
}

// EmbeddingEncoder serializes the context to JSON, runs it through an
// allow-listed embedding model, and ABI-encodes the (possibly quantized)
// vector alongside enough metadata to reconstruct its scale.
type EmbeddingEncoder struct {
	registry *embeddingRegistry
}

// NewEmbeddingEncoder builds an encoder restricted to the given model
// allow-list.
func NewEmbeddingEncoder(allowList []string) *EmbeddingEncoder {
	return &EmbeddingEncoder{registry: newEmbeddingRegistry(allowList)}
}

/**
 * @description
 * Encode runs ctx through the requested allow-listed model and ABI-packs
 * the resulting (possibly quantized) vector alongside its model name,
 * dimensions, and scale.
 *
 * @param ctx The context to embed.
 * @param opts Selects the embedding model and quantization scheme.
 * @returns The packed embedding attestation and its keccak-256 digest.
 */
func (e *EmbeddingEncoder) Encode(ctx *transcript.HttpContext, opts EncodeOptions) (EncodedContext, error) {
	model, err := e.registry.get(opts.EmbeddingModel)
	if err != nil {
		return EncodedContext{}, err
	}

	text, err := json.Marshal(ctx)
	if err != nil {
		return EncodedContext{}, fmt.Errorf("encoding: marshaling context for embedding: %w", err)
	}

	vec := model.embed(string(text))
	embedded, scaleWad := quantizeVector(vec, opts.Quantization)

	att := embeddingAttestation{
		Model:        opts.EmbeddingModel,
		Dimensions:   uint16(len(vec)),
		Quantization: uint8(opts.Quantization),
		Embedding:    embedded,
		ScaleWad:     scaleWad,
	}

	args, err := embeddingAttestationArguments()
	if err != nil {
		return EncodedContext{}, err
	}
	data, err := args.Pack(att)
	if err != nil {
		return EncodedContext{}, fmt.Errorf("encoding: abi-packing embedding attestation: %w", err)
	}
	digest := crypto.Keccak256(data)
	return EncodedContext{Data: data, Digest: digest}, nil
}

func (e *EmbeddingEncoder) Name() string {
	return "embedding"
}

func (e *EmbeddingEncoder) AvailableModels() []string {
	return e.registry.names()
}

/**
 * @description
 * quantizeVector packs a float64 vector per the quantization rule and
 * returns the scaleWad to accompany it.
 *
 * @param vec The raw float64 vector to pack.
 * @param q Selects float32 or scaled-int8 packing.
 * @returns The packed bytes and the fixed-point scale factor needed to
 * reconstruct the original magnitudes.
 */
func quantizeVector(vec []float64, q Quantization) ([]byte, *big.Int) {
	switch q {
	case QuantizationInt8:
		m := 0.0
		for _, v := range vec {
			if abs := math.Abs(v); abs > m {
				m = abs
			}
		}
		out := make([]byte, len(vec))
		if m == 0 {
			return out, big.NewInt(0)
		}
		for i, v := range vec {
			scaled := math.Round(v / m * 127)
			if scaled > 127 {
				scaled = 127
			}
			if scaled < -127 {
				scaled = -127
			}
			out[i] = byte(int8(scaled))
		}
		scaleWad := new(big.Int)
		big.NewFloat(m * 1e18).Int(scaleWad)
		return out, scaleWad
	default: // QuantizationFloat32
		out := make([]byte, len(vec)*4)
		for i, v := range vec {
			binary.BigEndian.PutUint32(out[i*4:i*4+4], math.Float32bits(float32(v)))
		}
		return out, big.NewInt(0)
	}
}
