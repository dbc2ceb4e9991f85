package services

import (
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"
)

// RefundPlan splits the refundable payments of an order by where the money
// has to go back to.
type RefundPlan struct {
	Gateway []*payment.Payment
	Wallet  []*payment.Payment
}

// WalletTotal is the amount credited back to the payer's wallet.
func (p RefundPlan) WalletTotal() kernel.Money {
	return sum(p.Wallet)
}

// GatewayTotal is the amount refunded through the gateway.
func (p RefundPlan) GatewayTotal() kernel.Money {
	return sum(p.Gateway)
}

func (p RefundPlan) IsEmpty() bool {
	return len(p.Gateway) == 0 && len(p.Wallet) == 0
}

// RefundPlanner selects the payments of one order that still have to be
// reversed: completed, not refund records themselves, and not referenced by
// an existing refund record. The input order is kept in each bucket.
type RefundPlanner struct{}

func NewRefundPlanner() RefundPlanner {
	return RefundPlanner{}
}

func (RefundPlanner) Plan(payments []*payment.Payment) RefundPlan {
	refunded := make(map[kernel.UUID]struct{})
	for _, p := range payments {
		if id, ok := p.RefundOf(); ok {
			refunded[id] = struct{}{}
		}
	}

	var plan RefundPlan
	for _, p := range payments {
		if p.Status() != payment.StatusCompleted || p.IsRefund() {
			continue
		}
		if _, done := refunded[p.ID()]; done {
			continue
		}

		if p.Origin() == payment.OriginGateway {
			plan.Gateway = append(plan.Gateway, p)
		} else {
			plan.Wallet = append(plan.Wallet, p)
		}
	}

	return plan
}

func sum(payments []*payment.Payment) kernel.Money {
	total := kernel.ZeroMoney()
	for _, p := range payments {
		total = total.Add(p.Amount())
	}
	return total
}
