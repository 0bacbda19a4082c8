package memstore

import (
	"context"
	"sync"
	"time"

	"opname-backend/internal/models"
	"opname-backend/internal/store"
)

// Store menyimpan keempat koleksi di memori, dipakai oleh tes dan mode
// pengembangan tanpa DATABASE_DSN. Semua akses diserialisasi lewat satu mutex;
// Atomically bekerja dengan snapshot-lalu-pulihkan sehingga batch yang gagal
// tidak meninggalkan perubahan parsial.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	items        []models.Item
	categories   []models.Category
	transactions []models.Transaction // terbaru dulu
	opnames      []models.OpnameSession
	audits       []models.AuditLog
	auditSeq     uint
}

func New() *Store {
	return &Store{}
}

func (st state) clone() state {
	c := state{
		items:        append([]models.Item(nil), st.items...),
		categories:   append([]models.Category(nil), st.categories...),
		transactions: append([]models.Transaction(nil), st.transactions...),
		opnames:      make([]models.OpnameSession, 0, len(st.opnames)),
		audits:       append([]models.AuditLog(nil), st.audits...),
		auditSeq:     st.auditSeq,
	}
	for _, session := range st.opnames {
		c.opnames = append(c.opnames, cloneSession(session))
	}
	return c
}

func cloneSession(session models.OpnameSession) models.OpnameSession {
	cp := session
	cp.Items = make([]models.OpnameItem, len(session.Items))
	for i, oi := range session.Items {
		cp.Items[i] = oi
		if oi.PhysicalStock != nil {
			v := *oi.PhysicalStock
			cp.Items[i].PhysicalStock = &v
		}
	}
	return cp
}

// session adalah tampilan tanpa lock untuk dipakai di dalam Atomically;
// lock dipegang oleh pemanggil terluar.
type session struct {
	s *Store
}

var _ store.Store = (*Store)(nil)
var _ store.Store = session{}

func (s *Store) ListItems(ctx context.Context) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listItems()
}
func (s session) ListItems(ctx context.Context) ([]models.Item, error) { return s.s.listItems() }

func (s *Store) listItems() ([]models.Item, error) {
	return append([]models.Item(nil), s.state.items...), nil
}

func (s *Store) GetItem(ctx context.Context, id string) (models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getItem(id)
}
func (s session) GetItem(ctx context.Context, id string) (models.Item, error) {
	return s.s.getItem(id)
}

func (s *Store) getItem(id string) (models.Item, error) {
	for _, item := range s.state.items {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, store.ErrItemNotFound
}

func (s *Store) SaveItem(ctx context.Context, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveItem(item)
}
func (s session) SaveItem(ctx context.Context, item models.Item) error { return s.s.saveItem(item) }

func (s *Store) saveItem(item models.Item) error {
	for i := range s.state.items {
		if s.state.items[i].ID == item.ID {
			s.state.items[i] = item
			return nil
		}
	}
	s.state.items = append(s.state.items, item)
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteItem(id)
}
func (s session) DeleteItem(ctx context.Context, id string) error { return s.s.deleteItem(id) }

func (s *Store) deleteItem(id string) error {
	for i := range s.state.items {
		if s.state.items[i].ID == id {
			s.state.items = append(s.state.items[:i], s.state.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) SetItemStock(ctx context.Context, id string, stock int, ts time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setItemStock(id, stock, ts)
}
func (s session) SetItemStock(ctx context.Context, id string, stock int, ts time.Time) error {
	return s.s.setItemStock(id, stock, ts)
}

func (s *Store) setItemStock(id string, stock int, ts time.Time) error {
	for i := range s.state.items {
		if s.state.items[i].ID == id {
			s.state.items[i].CurrentStock = stock
			s.state.items[i].LastUpdated = ts
			return nil
		}
	}
	return store.ErrItemNotFound
}

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listCategories()
}
func (s session) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.s.listCategories()
}

func (s *Store) listCategories() ([]models.Category, error) {
	return append([]models.Category(nil), s.state.categories...), nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCategory(id)
}
func (s session) GetCategory(ctx context.Context, id string) (models.Category, error) {
	return s.s.getCategory(id)
}

func (s *Store) getCategory(id string) (models.Category, error) {
	for _, cat := range s.state.categories {
		if cat.ID == id {
			return cat, nil
		}
	}
	return models.Category{}, store.ErrCategoryNotFound
}

func (s *Store) SaveCategory(ctx context.Context, cat models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCategory(cat)
}
func (s session) SaveCategory(ctx context.Context, cat models.Category) error {
	return s.s.saveCategory(cat)
}

func (s *Store) saveCategory(cat models.Category) error {
	for i := range s.state.categories {
		if s.state.categories[i].ID == cat.ID {
			s.state.categories[i] = cat
			return nil
		}
	}
	s.state.categories = append(s.state.categories, cat)
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteCategory(id)
}
func (s session) DeleteCategory(ctx context.Context, id string) error {
	return s.s.deleteCategory(id)
}

func (s *Store) deleteCategory(id string) error {
	for i := range s.state.categories {
		if s.state.categories[i].ID == id {
			s.state.categories = append(s.state.categories[:i], s.state.categories[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) AppendTransactions(ctx context.Context, txs []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendTransactions(txs)
}
func (s session) AppendTransactions(ctx context.Context, txs []models.Transaction) error {
	return s.s.appendTransactions(txs)
}

// appendTransactions menaruh batch baru di depan supaya daftar tetap
// terbaru-dulu, sama seperti penyimpanan aslinya.
func (s *Store) appendTransactions(txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	s.state.transactions = append(append([]models.Transaction(nil), txs...), s.state.transactions...)
	return nil
}

func (s *Store) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listTransactions()
}
func (s session) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.s.listTransactions()
}

func (s *Store) listTransactions() ([]models.Transaction, error) {
	return append([]models.Transaction(nil), s.state.transactions...), nil
}

func (s *Store) CreateOpname(ctx context.Context, sessionModel models.OpnameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createOpname(sessionModel)
}
func (s session) CreateOpname(ctx context.Context, sessionModel models.OpnameSession) error {
	return s.s.createOpname(sessionModel)
}

func (s *Store) createOpname(sessionModel models.OpnameSession) error {
	s.state.opnames = append([]models.OpnameSession{cloneSession(sessionModel)}, s.state.opnames...)
	return nil
}

func (s *Store) GetOpname(ctx context.Context, id string) (models.OpnameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOpname(id)
}
func (s session) GetOpname(ctx context.Context, id string) (models.OpnameSession, error) {
	return s.s.getOpname(id)
}

func (s *Store) getOpname(id string) (models.OpnameSession, error) {
	for _, sess := range s.state.opnames {
		if sess.ID == id {
			return cloneSession(sess), nil
		}
	}
	return models.OpnameSession{}, store.ErrSessionNotFound
}

func (s *Store) ListOpnames(ctx context.Context) ([]models.OpnameSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listOpnames()
}
func (s session) ListOpnames(ctx context.Context) ([]models.OpnameSession, error) {
	return s.s.listOpnames()
}

func (s *Store) listOpnames() ([]models.OpnameSession, error) {
	out := make([]models.OpnameSession, 0, len(s.state.opnames))
	for _, sess := range s.state.opnames {
		out = append(out, cloneSession(sess))
	}
	return out, nil
}

func (s *Store) UpdateOpname(ctx context.Context, sessionModel models.OpnameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateOpname(sessionModel)
}
func (s session) UpdateOpname(ctx context.Context, sessionModel models.OpnameSession) error {
	return s.s.updateOpname(sessionModel)
}

func (s *Store) updateOpname(sessionModel models.OpnameSession) error {
	for i := range s.state.opnames {
		if s.state.opnames[i].ID == sessionModel.ID {
			s.state.opnames[i] = cloneSession(sessionModel)
			return nil
		}
	}
	return store.ErrSessionNotFound
}

func (s *Store) AppendAuditLog(ctx context.Context, entry models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendAuditLog(entry)
}
func (s session) AppendAuditLog(ctx context.Context, entry models.AuditLog) error {
	return s.s.appendAuditLog(entry)
}

func (s *Store) appendAuditLog(entry models.AuditLog) error {
	s.state.auditSeq++
	entry.ID = s.state.auditSeq
	s.state.audits = append([]models.AuditLog{entry}, s.state.audits...)
	return nil
}

func (s *Store) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAuditLogs(limit)
}
func (s session) ListAuditLogs(ctx context.Context, limit int) ([]models.AuditLog, error) {
	return s.s.listAuditLogs(limit)
}

func (s *Store) listAuditLogs(limit int) ([]models.AuditLog, error) {
	logs := append([]models.AuditLog(nil), s.state.audits...)
	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *Store) ReplaceAll(ctx context.Context, items []models.Item, txs []models.Transaction, opnames []models.OpnameSession, categories []models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceAll(items, txs, opnames, categories)
}
func (s session) ReplaceAll(ctx context.Context, items []models.Item, txs []models.Transaction, opnames []models.OpnameSession, categories []models.Category) error {
	return s.s.replaceAll(items, txs, opnames, categories)
}

func (s *Store) replaceAll(items []models.Item, txs []models.Transaction, opnames []models.OpnameSession, categories []models.Category) error {
	s.state.items = append([]models.Item(nil), items...)
	s.state.transactions = append([]models.Transaction(nil), txs...)
	s.state.opnames = make([]models.OpnameSession, 0, len(opnames))
	for _, sess := range opnames {
		s.state.opnames = append(s.state.opnames, cloneSession(sess))
	}
	s.state.categories = append([]models.Category(nil), categories...)
	return nil
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reset()
}
func (s session) Reset(ctx context.Context) error { return s.s.reset() }

func (s *Store) reset() error {
	s.state = state{}
	return nil
}

// Atomically menahan lock selama fn berjalan; snapshot dipulihkan kalau fn
// gagal sehingga tidak ada perubahan parsial yang bocor.
func (s *Store) Atomically(ctx context.Context, fn func(store.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.state.clone()
	if err := fn(session{s: s}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

// Atomically di dalam Atomically cukup meneruskan fn; lock sudah dipegang.
func (s session) Atomically(ctx context.Context, fn func(store.Store) error) error {
	snapshot := s.s.state.clone()
	if err := fn(s); err != nil {
		s.s.state = snapshot
		return err
	}
	return nil
}
