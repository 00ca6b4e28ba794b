// Package domain contains the core business entities, value objects, and
// validation rules of the application: users, their tasks and the task
// status lifecycle. It is independent of any storage or transport concern.
package domain
