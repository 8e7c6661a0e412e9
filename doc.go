// Package tasks implements a multi-user task tracking service: account
// registration and login backed by signed bearer tokens, plus an
// authorization-aware task lifecycle (create, list, fetch, update, delete).
//
// Access rules:
//   - Every task is owned by exactly one user, fixed at creation.
//   - Regular users only see and mutate their own tasks; principals holding
//     the ADMIN role operate on any task.
//   - The caller's Principal is resolved against the account store at the
//     HTTP boundary and passed explicitly into every TaskManager operation;
//     token claims identify the account but never carry authority on their own.
//
// Persistence runs through Bun repositories, failures are expressed as
// categorized go-errors values so the boundary can map them to protocol
// statuses without string matching.
package tasks
