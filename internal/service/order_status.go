package service

import "github.com/milktea-next/internal/constants"

// allowedTransitions 订单状态流转表：当前状态 -> 目标状态 -> 允许的操作角色。
// completed 与 cancelled 为终态，不在表内，任何流出均被拒绝。
var allowedTransitions = map[string]map[string][]string{
	constants.OrderStatusPending: {
		constants.OrderStatusConfirmed: {constants.ActorAdmin},
		constants.OrderStatusCancelled: {constants.ActorCustomer, constants.ActorAdmin},
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusCompleted: {constants.ActorAdmin},
		constants.OrderStatusCancelled: {constants.ActorAdmin},
	},
}

// isTransitionAllowed 校验状态流转与操作角色
func isTransitionAllowed(current, target, actor string) bool {
	nexts, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	actors, ok := nexts[target]
	if !ok {
		return false
	}
	for _, a := range actors {
		if a == actor {
			return true
		}
	}
	return false
}

// isTerminalStatus 判断是否终态
func isTerminalStatus(status string) bool {
	return status == constants.OrderStatusCompleted || status == constants.OrderStatusCancelled
}

// isValidStatus 判断是否已知状态
func isValidStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending,
		constants.OrderStatusConfirmed,
		constants.OrderStatusCompleted,
		constants.OrderStatusCancelled:
		return true
	}
	return false
}
