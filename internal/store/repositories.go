// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

// Repositories bundles the repositories of one unit of work.
type Repositories struct {
	Objects  ObjectRepository
	Tasks    TaskQueueStore
	Users    UserRepository
	Counters CounterRepository
}

func newRepositories(q querier, db *DB) *Repositories {
	return &Repositories{
		Objects:  newObjectRepository(q, db),
		Tasks:    newTaskQueueRepository(q, db),
		Users:    newUserRepository(q, db),
		Counters: newCounterRepository(q, db),
	}
}
