package services

import (
	"context"
	"crypto-price-sync/internal/domain/entities"
	"crypto-price-sync/internal/domain/interfaces"
	"crypto-price-sync/internal/infrastructure/logging"
	"crypto-price-sync/internal/infrastructure/metrics"
	"sync"
	"time"
)

// DefaultFetchTimeout acota cada fetch cuando no se configura otro valor
const DefaultFetchTimeout = 15 * time.Second

// Trigger identifica qué originó un fetch
type Trigger string

const (
	TriggerForeground Trigger = "foreground" // cold start sin cache
	TriggerSilent     Trigger = "silent"     // refresco en segundo plano tras leer el cache
	TriggerUser       Trigger = "user"       // pull-to-refresh
)

const fallbackErrorMessage = "failed to fetch prices"

// SyncController owns the ViewState and the last good snapshot. A single
// in-flight guard serialises the silent refresh and user refreshes: a refresh
// requested while a fetch is running is ignored.
type SyncController struct {
	source       interfaces.QuoteSource
	store        interfaces.SnapshotStore
	assets       []entities.AssetID
	fetchTimeout time.Duration
	now          func() time.Time

	mu          sync.Mutex
	state       entities.ViewState
	inFlight    bool
	initialized bool
	closed      bool
	subscribers map[int]chan entities.ViewState
	nextSubID   int

	background sync.WaitGroup
}

var _ interfaces.SyncController = (*SyncController)(nil)

// NewSyncController crea el controlador. assets vacío usa el conjunto fijo completo.
func NewSyncController(source interfaces.QuoteSource, store interfaces.SnapshotStore, assets []entities.AssetID, fetchTimeout time.Duration) *SyncController {
	if len(assets) == 0 {
		assets = entities.KnownAssets()
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}

	return &SyncController{
		source:       source,
		store:        store,
		assets:       append([]entities.AssetID(nil), assets...),
		fetchTimeout: fetchTimeout,
		now:          time.Now,
		subscribers:  make(map[int]chan entities.ViewState),
	}
}

// WithClock reemplaza el reloj usado para lastUpdatedAt
func (c *SyncController) WithClock(now func() time.Time) *SyncController {
	c.now = now
	return c
}

// Initialize lee el cache. Con datos los publica y lanza un refresco silencioso
// en segundo plano; sin datos hace un fetch en primer plano y retorna al terminar.
// Solo la primera llamada tiene efecto.
func (c *SyncController) Initialize(ctx context.Context) {
	c.mu.Lock()
	if c.initialized || c.closed {
		c.mu.Unlock()
		return
	}
	c.initialized = true
	c.mu.Unlock()

	cached, hit := c.store.Read(ctx)

	if hit {
		if !c.adoptCached(ctx, cached) {
			return
		}

		go func() {
			defer c.background.Done()
			c.fetch(context.WithoutCancel(ctx), TriggerSilent)
		}()
		return
	}

	started, _ := c.beginFetch(func(s *entities.ViewState) {
		s.IsLoading = true
		s.ErrorMessage = ""
	})
	if !started {
		return
	}
	c.fetch(ctx, TriggerForeground)
}

// Refresh hace un fetch pedido por el usuario y retorna cuando termina.
// Retorna false si fue ignorado porque ya había un fetch en curso.
func (c *SyncController) Refresh(ctx context.Context) bool {
	started, reason := c.beginFetch(func(s *entities.ViewState) {
		s.IsRefreshing = true
	})
	if !started {
		metrics.RecordRefreshIgnored()
		logging.Sync().RefreshIgnored(ctx, reason)
		return false
	}

	c.fetch(ctx, TriggerUser)
	return true
}

// State retorna una copia del estado actual
func (c *SyncController) State() entities.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe entrega el estado actual de inmediato y luego cada cambio.
// El canal guarda solo el último valor: un lector lento ve el estado más
// reciente, no cada transición. cancel cierra el canal.
func (c *SyncController) Subscribe() (<-chan entities.ViewState, func()) {
	ch := make(chan entities.ViewState, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch
	ch <- c.state.Clone()
	c.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				delete(c.subscribers, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Wait bloquea hasta que termine el refresco silencioso, si hay uno
func (c *SyncController) Wait() {
	c.background.Wait()
}

// Close espera el trabajo en segundo plano y cierra los canales de suscripción.
// Después de Close, Initialize y Refresh no hacen nada.
func (c *SyncController) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.background.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
}

// beginFetch toma el guard de fetch y publica el estado inicial del intento
func (c *SyncController) beginFetch(mutate func(*entities.ViewState)) (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, "controller closed"
	}
	if c.inFlight {
		return false, "fetch already in flight"
	}

	c.inFlight = true
	mutate(&c.state)
	c.publishLocked()
	return true, ""
}

// adoptCached publica el snapshot leído del cache. Si mientras se leía otro
// fetch ya obtuvo datos, el cache se descarta. Si hay un fetch en curso se
// muestran los datos cacheados pero no se lanza el refresco silencioso: ese
// fetch resuelve el estado. Retorna true cuando el llamador debe lanzar el
// refresco silencioso; en ese caso el guard y el Add del WaitGroup ya están tomados.
func (c *SyncController) adoptCached(ctx context.Context, cached *entities.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	// LastUpdatedAt solo se fija con un fetch exitoso
	if c.state.LastUpdatedAt != nil {
		logging.Sync().Info(ctx, "Discarding cached snapshot, newer data already published", logging.Fields{
			logging.FieldQuotes: cached.Len(),
		})
		return false
	}

	capturedAt := cached.CapturedAt
	c.state.Snapshot = cached
	c.state.LastUpdatedAt = &capturedAt
	c.state.IsLoading = false
	c.state.IsOffline = false
	c.state.ErrorMessage = ""

	startSilent := !c.inFlight
	if startSilent {
		c.inFlight = true
		c.background.Add(1)
	}
	c.publishLocked()

	logging.Sync().Info(ctx, "Showing cached snapshot", logging.Fields{
		logging.FieldQuotes:  cached.Len(),
		"captured_at":        capturedAt,
		"background_refresh": startSilent,
	})
	return startSilent
}

// finishFetch libera el guard y publica el resultado
func (c *SyncController) finishFetch(mutate func(*entities.ViewState)) entities.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false
	mutate(&c.state)
	c.publishLocked()
	return c.state.Clone()
}

func (c *SyncController) fetch(ctx context.Context, trigger Trigger) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	logging.Sync().FetchStarted(ctx, string(trigger), len(c.assets))
	start := time.Now()

	snapshot, err := c.source.FetchQuotes(fetchCtx, c.assets)
	duration := time.Since(start).Seconds()
	metrics.RecordSyncFetch(string(trigger), err == nil, duration)

	if err != nil {
		c.applyFailure(ctx, trigger, err)
		return
	}
	if snapshot == nil {
		snapshot = entities.NewSnapshot(nil, c.now())
	}

	updatedAt := c.now()
	state := c.finishFetch(func(s *entities.ViewState) {
		s.Snapshot = snapshot
		s.LastUpdatedAt = &updatedAt
		s.IsLoading = false
		s.IsRefreshing = false
		s.IsOffline = false
		s.ErrorMessage = ""
	})
	recordState(state, updatedAt)
	logging.Sync().FetchSucceeded(ctx, string(trigger), snapshot.Len(), duration)

	// El estado ya está publicado; un fallo de escritura solo se registra
	if err := c.store.Write(context.WithoutCancel(ctx), snapshot); err != nil {
		logging.Sync().WarnWithError(ctx, "Failed to persist snapshot", err, logging.Fields{
			logging.FieldTrigger: string(trigger),
		})
	}
}

func (c *SyncController) applyFailure(ctx context.Context, trigger Trigger, err error) {
	message := err.Error()
	if message == "" {
		message = fallbackErrorMessage
	}

	userFacing := false
	state := c.finishFetch(func(s *entities.ViewState) {
		s.IsLoading = false
		s.IsRefreshing = false
		s.IsOffline = true

		switch trigger {
		case TriggerForeground:
			s.ErrorMessage = message
		case TriggerSilent:
			s.ErrorMessage = ""
		case TriggerUser:
			// sin datos que mostrar el error sigue siendo lo único útil
			if s.HasData() {
				s.ErrorMessage = ""
			} else {
				s.ErrorMessage = message
			}
		}
		userFacing = s.ErrorMessage != ""
	})

	recordState(state, c.now())
	logging.Sync().FetchFailed(ctx, string(trigger), err, userFacing)
}

func recordState(state entities.ViewState, now time.Time) {
	metrics.UpdateOfflineStatus(state.IsOffline)
	if state.Snapshot == nil {
		return
	}
	for _, q := range state.Snapshot.Quotes {
		metrics.UpdateCurrentQuote(string(q.ID), q.PriceUSD, q.Change24hPct)
	}
	if state.LastUpdatedAt != nil {
		metrics.UpdateSnapshotAge(now.Sub(*state.LastUpdatedAt).Seconds())
	}
}

// publishLocked envía una copia del estado a cada suscriptor; si el buffer
// está lleno se descarta el valor viejo. Requiere c.mu tomado.
func (c *SyncController) publishLocked() {
	for _, ch := range c.subscribers {
		st := c.state.Clone()
		select {
		case ch <- st:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}
