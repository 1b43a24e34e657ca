package realtimesvc

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hanguan2025/my-order-admin/internal/api/events"
	"github.com/hanguan2025/my-order-admin/internal/common"
	"github.com/hanguan2025/my-order-admin/internal/global"
	"github.com/hanguan2025/my-order-admin/internal/logger"
)

// RealtimeService nối nguồn thay đổi dữ liệu (change stream của MongoDB,
// fallback là event bus trong process) vào Hub để đẩy ra SSE, và giữ
// PendingTracker cho chuông đơn mới.
type RealtimeService struct {
	Hub     *Hub
	Tracker *PendingTracker

	collections map[string]*mongo.Collection
}

// watchedCollections liệt kê các collection được stream, kèm thứ tự chuẩn
// của snapshot: orders mới nhất trước, các collection còn lại theo sortOrder.
func watchedCollections() []string {
	return []string{
		global.MongoDB_ColNames.Orders,
		global.MongoDB_ColNames.Menu,
		global.MongoDB_ColNames.Mains,
		global.MongoDB_ColNames.Extras,
	}
}

// NewRealtimeService tạo RealtimeService trên các collection đã đăng ký.
func NewRealtimeService() (*RealtimeService, error) {
	collections := make(map[string]*mongo.Collection)
	for _, name := range watchedCollections() {
		collection, exist := global.RegistryCollections.Get(name)
		if !exist {
			return nil, fmt.Errorf("failed to get %s collection: %v", name, common.ErrNotFound)
		}
		collections[name] = collection
	}

	return &RealtimeService{
		Hub:         NewHub(),
		Tracker:     NewPendingTracker(),
		collections: collections,
	}, nil
}

// snapshotSort trả về thứ tự chuẩn của một collection
func snapshotSort(name string) bson.D {
	if name == global.MongoDB_ColNames.Orders {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}}
}

// Snapshot đọc toàn bộ một collection theo thứ tự chuẩn. Với orders,
// snapshot cũng được đưa qua PendingTracker để phát chuông cho đơn 待處理
// chưa có trong snapshot trước.
func (s *RealtimeService) Snapshot(ctx context.Context, name string) ([]bson.M, error) {
	collection, ok := s.collections[name]
	if !ok {
		return nil, common.ErrNotFound
	}

	cursor, err := collection.Find(ctx, bson.M{}, options.Find().SetSort(snapshotSort(name)))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if name == global.MongoDB_ColNames.Orders {
		refs := make([]OrderRef, 0, len(docs))
		for _, doc := range docs {
			refs = append(refs, OrderRef{ID: docIDHex(doc), Status: docStatus(doc)})
		}
		for _, id := range s.Tracker.ObserveSnapshot(refs) {
			s.Hub.Publish(Event{
				Collection: name,
				Type:       EventOrderPending,
				DocumentID: id,
			})
		}
	}

	return docs, nil
}

func docIDHex(doc bson.M) string {
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		return id.Hex()
	}
	return ""
}

func docStatus(doc bson.M) string {
	status, _ := doc["status"].(string)
	return status
}

// Start mở change stream cho từng collection. Nếu MongoDB không hỗ trợ
// change stream (standalone, không replica set) thì chuyển sang event bus
// trong process — chỉ thấy write do chính server này phát ra.
func (s *RealtimeService) Start(ctx context.Context) {
	supported := true
	for name, collection := range s.collections {
		stream, err := collection.Watch(ctx, mongo.Pipeline{},
			options.ChangeStream().SetFullDocument(options.UpdateLookup))
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"collection": name,
				"error":      err.Error(),
			}).Warn("[REALTIME] Không mở được change stream, dùng event bus trong process")
			supported = false
			break
		}
		go s.consumeStream(ctx, name, stream)
	}

	if !supported {
		s.registerBusFallback()
	}
}

// streamRetryBase và streamRetryMax giới hạn backoff khi mở lại change stream.
const (
	streamRetryBase = 2 * time.Second
	streamRetryMax  = time.Minute
)

// nextStreamBackoff nhân đôi backoff đến trần streamRetryMax
func nextStreamBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > streamRetryMax {
		return streamRetryMax
	}
	return next
}

// consumeStream đọc một change stream và phát sự kiện tương ứng.
// Stream đứt thì mở lại với backoff nhân đôi (trần 1 phút), chỉ dừng hẳn
// khi ctx bị hủy; client SSE tự làm mới bằng snapshot khi nối lại.
func (s *RealtimeService) consumeStream(ctx context.Context, name string, stream *mongo.ChangeStream) {
	backoff := streamRetryBase

	for {
		if stream != nil {
			s.readStream(ctx, name, stream)
			err := stream.Err()
			stream.Close(ctx)
			if ctx.Err() != nil {
				return
			}

			backoff = streamRetryBase
			logger.GetAppLogger().WithFields(logrus.Fields{
				"collection": name,
				"error":      fmt.Sprintf("%v", err),
			}).Warn("[REALTIME] Change stream đứt, mở lại")
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}

		var err error
		stream, err = s.collections[name].Watch(ctx, mongo.Pipeline{},
			options.ChangeStream().SetFullDocument(options.UpdateLookup))
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"collection": name,
				"error":      err.Error(),
				"retry_in":   nextStreamBackoff(backoff).String(),
			}).Error("[REALTIME] Mở lại change stream thất bại")
			backoff = nextStreamBackoff(backoff)
			stream = nil
		}
	}
}

// readStream đọc sự kiện từ một change stream cho đến khi stream đứt
// hoặc ctx bị hủy
func (s *RealtimeService) readStream(ctx context.Context, name string, stream *mongo.ChangeStream) {
	for stream.Next(ctx) {
		var change struct {
			OperationType string `bson:"operationType"`
			FullDocument  bson.M `bson:"fullDocument"`
			DocumentKey   struct {
				ID primitive.ObjectID `bson:"_id"`
			} `bson:"documentKey"`
		}
		if err := stream.Decode(&change); err != nil {
			continue
		}

		idHex := change.DocumentKey.ID.Hex()
		switch change.OperationType {
		case "insert":
			s.publishChange(name, EventAdded, idHex, change.FullDocument)
		case "update", "replace":
			s.publishChange(name, EventModified, idHex, change.FullDocument)
		case "delete":
			if name == global.MongoDB_ColNames.Orders {
				s.Tracker.Forget(idHex)
			}
			s.publishChange(name, EventRemoved, idHex, nil)
		}
	}
}

// publishChange phát một sự kiện changelog, kèm chuông nếu là đơn 待處理 mới.
func (s *RealtimeService) publishChange(name string, eventType string, idHex string, doc bson.M) {
	s.Hub.Publish(Event{
		Collection: name,
		Type:       eventType,
		DocumentID: idHex,
		Document:   doc,
	})

	if name == global.MongoDB_ColNames.Orders && eventType == EventAdded {
		if s.Tracker.ObserveArrival(idHex, docStatus(doc)) {
			s.Hub.Publish(Event{
				Collection: name,
				Type:       EventOrderPending,
				DocumentID: idHex,
			})
		}
	}
}

// registerBusFallback nghe event bus CRUD trong process thay cho change stream.
func (s *RealtimeService) registerBusFallback() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		if _, watched := s.collections[e.CollectionName]; !watched {
			return
		}

		idHex := events.GetIDHex(e.Document)
		switch e.Operation {
		case events.OpInsert:
			doc, _ := toBsonM(e.Document)
			s.publishChange(e.CollectionName, EventAdded, idHex, doc)
		case events.OpUpdate, events.OpUpsert:
			doc, _ := toBsonM(e.Document)
			s.publishChange(e.CollectionName, EventModified, idHex, doc)
		case events.OpDelete:
			if e.CollectionName == global.MongoDB_ColNames.Orders {
				s.Tracker.Forget(idHex)
			}
			s.publishChange(e.CollectionName, EventRemoved, idHex, nil)
		}
	})
}

// toBsonM chuyển một document bất kỳ sang bson.M để đẩy ra SSE
func toBsonM(doc interface{}) (bson.M, error) {
	if doc == nil {
		return nil, nil
	}
	if m, ok := doc.(bson.M); ok {
		return m, nil
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
