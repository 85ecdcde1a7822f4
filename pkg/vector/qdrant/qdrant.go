// Package qdrant provides a vector.Driver backed by a Qdrant collection over
// its gRPC API.
package qdrant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"

	"github.com/papercomputeco/researchpilot/pkg/vector"
)

const (
	// DefaultCollection is used when Config.Collection is empty.
	DefaultCollection = "pilot_facts"

	// DefaultPort is Qdrant's gRPC port.
	DefaultPort = 6334

	payloadDocID = "doc_id"
)

// pointNamespace scopes the deterministic point UUIDs derived from document IDs.
var pointNamespace = uuid.MustParse("5b0c5f5e-8f0e-4d2a-9a57-6c8f4d1e2b3a")

// Config holds configuration for the Qdrant driver.
type Config struct {
	// Target is "host", "host:port", or a URL such as "https://host:6334".
	Target     string
	APIKey     string
	Collection string
	Dimensions uint
}

// Driver implements vector.Driver on one Qdrant collection with cosine
// distance.
type Driver struct {
	client     *qdrant.Client
	collection string
	logger     *slog.Logger
}

// NewDriver connects to Qdrant and creates the collection when missing.
func NewDriver(ctx context.Context, c Config, logger *slog.Logger) (*Driver, error) {
	if c.Dimensions == 0 {
		return nil, errors.New("qdrant embedding dimensions cannot be 0, must be configured")
	}

	qc, err := ParseTarget(c.Target)
	if err != nil {
		return nil, err
	}
	qc.APIKey = c.APIKey

	client, err := qdrant.NewClient(qc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vector.ErrConnection, err)
	}

	collection := c.Collection
	if collection == "" {
		collection = DefaultCollection
	}

	exists, err := client.CollectionExists(ctx, collection)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: checking collection %s: %v", vector.ErrConnection, collection, err)
	}
	if !exists {
		err = client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(c.Dimensions),
				Distance: qdrant.Distance_Cosine,
			}),
		})
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("creating collection %s: %w", collection, err)
		}
	}

	logger.Info("qdrant vector driver initialized",
		"host", qc.Host,
		"port", qc.Port,
		"collection", collection,
		"created", !exists,
	)

	return &Driver{client: client, collection: collection, logger: logger}, nil
}

// ParseTarget turns a configured target into client settings.
func ParseTarget(target string) (*qdrant.Config, error) {
	if target == "" {
		return &qdrant.Config{Host: "localhost", Port: DefaultPort}, nil
	}

	useTLS := false
	hostport := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		useTLS = u.Scheme == "https"
		hostport = u.Host
	}

	host, portStr, err := net.SplitHostPort(hostport)
	if err != nil {
		return &qdrant.Config{Host: hostport, Port: DefaultPort, UseTLS: useTLS}, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid qdrant port %q: %w", portStr, err)
	}
	return &qdrant.Config{Host: host, Port: port, UseTLS: useTLS}, nil
}

// PointID maps a document ID onto the UUID point ID Qdrant requires.
func PointID(docID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(docID)).String()
}

// Add upserts documents as points, keeping the document ID in the payload.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	points := make([]*qdrant.PointStruct, 0, len(docs))
	for _, doc := range docs {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(PointID(doc.ID)),
			Vectors: qdrant.NewVectors(doc.Embedding...),
			Payload: qdrant.NewValueMap(map[string]any{payloadDocID: doc.ID}),
		})
	}

	wait := true
	if _, err := d.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: d.collection,
		Wait:           &wait,
		Points:         points,
	}); err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	d.logger.Debug("added documents to qdrant", "count", len(docs))
	return nil
}

// Query returns the nearest points by cosine similarity.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = vector.DefaultTopK
	}
	limit := uint64(topK)

	points, err := d.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: d.collection,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying points: %w", err)
	}

	results := make([]vector.QueryResult, 0, len(points))
	for _, p := range points {
		docID := p.GetPayload()[payloadDocID].GetStringValue()
		results = append(results, vector.QueryResult{
			Document: vector.Document{ID: docID},
			Score:    p.GetScore(),
		})
	}

	d.logger.Debug("queried qdrant", "results", len(results))
	return results, nil
}

// Delete removes the points for the given document IDs.
func (d *Driver) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	pointIDs := make([]*qdrant.PointId, len(ids))
	for i, id := range ids {
		pointIDs[i] = qdrant.NewID(PointID(id))
	}

	wait := true
	if _, err := d.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: d.collection,
		Wait:           &wait,
		Points:         qdrant.NewPointsSelector(pointIDs...),
	}); err != nil {
		return fmt.Errorf("deleting points: %w", err)
	}

	d.logger.Debug("deleted documents from qdrant", "count", len(ids))
	return nil
}

// Close closes the gRPC connection.
func (d *Driver) Close() error {
	return d.client.Close()
}

var _ vector.Driver = (*Driver)(nil)
