package services

import (
	"nodelete/internal/models"
	"nodelete/internal/providers"
	"time"
)

// EventRouter turns host notifications into log appends. Lookups race with
// the host cache: a delete seen after eviction records only {id, channelId},
// and an update seen after the cache was refreshed records the new content
// as "before". The host's event ordering decides which one happens.
type EventRouter struct {
	store   *models.LogStore
	lookup  MessageLookup
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	now     func() time.Time
}

func NewEventRouter(store *models.LogStore, lookup MessageLookup, metrics providers.MetricsProviderInterface, logger providers.Logger) *EventRouter {
	return &EventRouter{
		store:   store,
		lookup:  lookup,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func (r *EventRouter) HandleDelete(e models.Event) {
	snapshot := models.NewSnapshot(r.find(e.ChannelID, e.ID))
	if snapshot == nil {
		r.metrics.IncLookupMisses(string(models.EntryDelete))
		snapshot = models.MinimalSnapshot(e.ChannelID, e.ID)
	}

	r.store.Append(e.ChannelID, models.NewDeleteEntry(r.timestamp(), snapshot))
	r.metrics.IncEntriesAppended(string(models.EntryDelete))
	r.logger.Debugf(providers.TypeEvent, "Logged delete of %s in %s", e.ID, e.ChannelID)
}

func (r *EventRouter) HandleUpdate(e models.Event) {
	if e.Message == nil {
		r.logger.Warnf(providers.TypeEvent, "Ignored %s without message", e.Type)
		return
	}
	channelID := models.ResolveChannelID(e.Message)

	before := models.NewSnapshot(r.find(channelID, e.Message.ID))
	if before == nil {
		r.metrics.IncLookupMisses(string(models.EntryEdit))
	}

	r.store.Append(channelID, models.NewEditEntry(r.timestamp(), before, models.NewSnapshot(e.Message)))
	r.metrics.IncEntriesAppended(string(models.EntryEdit))
	r.logger.Debugf(providers.TypeEvent, "Logged edit of %s in %s", e.Message.ID, channelID)
}

// find never fails: no lookup collaborator means every lookup misses.
func (r *EventRouter) find(channelID, messageID string) models.MessageFields {
	if r.lookup == nil {
		return nil
	}
	msg, ok := r.lookup.GetMessage(channelID, messageID)
	if !ok {
		return nil
	}
	return msg
}

func (r *EventRouter) timestamp() int64 {
	return r.now().UnixMilli()
}
